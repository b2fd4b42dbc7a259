package dto

// ErrorResponse is the uniform error body. Fields is only present for
// validation failures and maps field name to message; object-scoped messages
// appear under "non_field_errors".
type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
