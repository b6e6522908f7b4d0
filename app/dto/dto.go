package dto

// APIResponse is the envelope every endpoint responds with. Data is set on
// success, Error on failure; neither is ever set alongside the other.
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty" validate:"omitempty"`
	Error   *ErrorDetail `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail carries a machine-readable error code plus optional
// code-specific details
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}
