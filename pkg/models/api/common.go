package api

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type Index struct {
	Name      string `json:"name"`
	WebSocket string `json:"websocket"`
}

type Health struct {
	Status string `json:"status"`
}
