package dto

type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Backend BackendHealth `json:"backend"`
}

type BackendHealth struct {
	URL       string `json:"url"`
	Status    string `json:"status"`
	AIEnabled bool   `json:"ai_enabled"`
	Model     string `json:"model,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}
