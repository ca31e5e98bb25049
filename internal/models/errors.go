package models

// ValidationError reports a missing or invalid field in a request. Handlers
// map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
