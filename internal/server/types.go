package server

// SubmitResponse is the response for the document submission endpoint.
// Response carries the provider's raw XML body; OK reflects the
// best-effort parsed STATUS.
type SubmitResponse struct {
	Status    string `json:"status"`
	OK        bool   `json:"ok"`
	Documents int    `json:"documents"`
	Response  string `json:"response"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
