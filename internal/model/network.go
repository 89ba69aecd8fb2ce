package model

// NetworkStatus represents response for GET /sessions/{id}/network
type NetworkStatus struct {
	ChainID         int64  `json:"chainId"`
	Name            string `json:"name"`
	Correct         bool   `json:"correct"`
	RequiredChainID int64  `json:"requiredChainId"`
	RequiredName    string `json:"requiredName"`
	SwitchAvailable bool   `json:"switchAvailable"`
}

// WrongNetworkResponse is the 409 body returned while the session is on the wrong chain
type WrongNetworkResponse struct {
	ErrorResponse
	Network NetworkStatus `json:"network"`
}
