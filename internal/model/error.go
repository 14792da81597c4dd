package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// Error carries a generic category label only; internal diagnostic detail
// never leaves the service.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
