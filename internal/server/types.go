package server

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

// InfoResponse is the response for the PDF info endpoint
type InfoResponse struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	Pages    int    `json:"pages"`
	Version  string `json:"version"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error          string `json:"error"`
	Details        string `json:"details,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}
