package model

// TokenBalance is an ERC-20 balance formatted with the token's decimals
type TokenBalance struct {
	Amount   string `json:"amount"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// InternalBalances holds the Ez-POL and Ez-SUSHI balances kept inside the EzKey contract
type InternalBalances struct {
	EzPol   string `json:"ezPol"`
	EzSushi string `json:"ezSushi"`
	Source  string `json:"source"` // strategy name or "default"
}

// BalanceProbeResult is the outcome of one internal balance strategy
type BalanceProbeResult struct {
	Strategy string `json:"strategy"`
	EzPol    string `json:"ezPol,omitempty"`
	EzSushi  string `json:"ezSushi,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BalanceProbeResponse represents response for GET /sessions/{id}/balances/probe
type BalanceProbeResponse struct {
	Address string               `json:"address"`
	Results []BalanceProbeResult `json:"results"`
}
