package models

// ValidationError names a request field and the rule it failed.
type ValidationError struct {
	Field     string `json:"field"`
	Validator string `json:"validator"`
}

// Response is the envelope every backend endpoint answers with.
type Response[T any] struct {
	Data    T                 `json:"data,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}
