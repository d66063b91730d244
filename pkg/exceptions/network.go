package exceptions

import "net/http"

func Network(message string, cause error) *Exception {
	return &Exception{Kind: KindNetwork, Message: message, StatusCode: http.StatusBadGateway, Err: cause}
}

// FromStatus classifies a non-2xx response of the task store.
func FromStatus(status int, message string) *Exception {
	var e *Exception
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		e = Validation(message)
	case http.StatusUnauthorized, http.StatusForbidden:
		e = Auth(message)
	case http.StatusNotFound:
		e = NotFound(message)
	default:
		e = Network(message, nil)
	}
	e.StatusCode = status
	return e
}
