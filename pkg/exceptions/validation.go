package exceptions

import "net/http"

func Validation(message string) *Exception {
	return &Exception{Kind: KindValidation, Message: message, StatusCode: http.StatusBadRequest}
}

var ErrTitleRequired = Validation("Task title is required")

// InvalidFields reports several invalid fields at once; message is the one
// shown when a caller can only display a single line.
func InvalidFields(message string, fields map[string]string) *Exception {
	e := Validation(message)
	e.Fields = fields
	return e
}
