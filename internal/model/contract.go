package model

// ContractCheckResponse represents response for GET /contracts/{address}
type ContractCheckResponse struct {
	Address    string `json:"address"`
	Valid      bool   `json:"valid"`
	IsContract bool   `json:"isContract"`
	IsToken    bool   `json:"isToken"`
	Name       string `json:"name,omitempty"`
	Symbol     string `json:"symbol,omitempty"`
	Decimals   uint8  `json:"decimals,omitempty"`
	Error      string `json:"error,omitempty"`
}
