package exceptions

var ErrInvalidJSON = Validation("invalid JSON payload")
