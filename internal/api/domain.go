package api

// Response represents a generic API response for success messages.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation successful"`
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Success   bool   `json:"success" example:"false"`
	Kind      string `json:"kind,omitempty" example:"invalid_request"`
	Reason    string `json:"reason,omitempty" example:"bad-date-range"`
	Error     string `json:"error" example:"start_date 2025-01-05 is after end_date 2025-01-02"`
	RequestID string `json:"request_id,omitempty" example:"host/abc123-000001"`
}
