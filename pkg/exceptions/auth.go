package exceptions

import "net/http"

func Auth(message string) *Exception {
	return &Exception{Kind: KindAuth, Message: message, StatusCode: http.StatusUnauthorized}
}

var ErrInvalidCredentials = Auth("Invalid email or password")
