package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidForm      = "INVALID_FORM"
	CodeBadRequest       = "BAD_REQUEST"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
)
