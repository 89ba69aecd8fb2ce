package model

// ActionRequest represents request for POST /sessions/{id}/actions/{action}
type ActionRequest struct {
	To      string `json:"to,omitempty"`      // transfer destination
	Spender string `json:"spender,omitempty"` // approve spender
	Amount  string `json:"amount,omitempty"`  // approve amount in EZOCH
}

// ActionResponse represents response for POST /sessions/{id}/actions/{action}
type ActionResponse struct {
	Action   string        `json:"action"`
	Tx       TxResult      `json:"tx"`
	Snapshot *UserSnapshot `json:"snapshot,omitempty"`
	Warning  string        `json:"warning,omitempty"` // refresh failed after a confirmed transaction
}
