package dto

// ErrorResponse is the error body for every non-2xx JSON response. Field
// names the first violated input field on validation failures.
type ErrorResponse struct {
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Details []string `json:"details,omitempty"`
}
