package errors

// HTTP flavoured constructors

func BadRequest(format string, args ...any) *Error {
	return New(400, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(404, format, args...)
}

func MethodNotAllowed(format string, args ...any) *Error {
	return New(405, format, args...)
}

// Conflict is used when a request names a resource that does not match, such as a key id
func Conflict(format string, args ...any) *Error {
	return New(409, format, args...)
}

// UnprocessableEntity is used when input is well formed but cannot be processed
func UnprocessableEntity(format string, args ...any) *Error {
	return New(422, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(500, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(503, format, args...)
}
