package dto

// SuccessResponse is the envelope returned by every successful API call.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the envelope returned by every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
