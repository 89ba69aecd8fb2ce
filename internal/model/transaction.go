package model

import "time"

// TxResult describes a mined transaction
type TxResult struct {
	TxHash      string    `json:"txHash"`
	BlockNumber uint64    `json:"blockNumber"`
	GasUsed     uint64    `json:"gasUsed"`
	ExplorerURL string    `json:"explorerUrl,omitempty"`
	MinedAt     time.Time `json:"minedAt"`
}

// GasEstimate represents response for GET /sessions/{id}/estimate/{action}
type GasEstimate struct {
	Action    string `json:"action"`
	Available bool   `json:"available"`
	GasUnits  uint64 `json:"gasUnits,omitempty"`
	GasPrice  string `json:"gasPriceGwei,omitempty"`
	CostMATIC string `json:"costMatic,omitempty"`
	CostUSD   string `json:"costUsd,omitempty"`
	Error     string `json:"error,omitempty"`
}
