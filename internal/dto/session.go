package dto

type SessionResponse struct {
	ID              string `json:"id,omitempty"`
	Stage           string `json:"stage"`
	FileName        string `json:"file_name,omitempty"`
	ValidationError string `json:"validation_error,omitempty"`
	Error           string `json:"error,omitempty"`
	HasResult       bool   `json:"has_result"`
	UpdatedAt       string `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string           `json:"error"`
	Session *SessionResponse `json:"session,omitempty"`
}
