package exceptions

import "net/http"

func NotFound(message string) *Exception {
	return &Exception{Kind: KindNotFound, Message: message, StatusCode: http.StatusNotFound}
}

var ErrTaskNotFound = NotFound("task not found")
