package model

// SessionResponse represents response for POST /sessions
type SessionResponse struct {
	ID      string        `json:"id"`
	Address string        `json:"address"`
	Network NetworkStatus `json:"network"`
}
