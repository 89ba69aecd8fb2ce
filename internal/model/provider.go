package model

import "encoding/json"

// ProviderRequest represents request for POST /wallet/request
type ProviderRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ProviderResponse represents response for POST /wallet/request
type ProviderResponse struct {
	Result any `json:"result"`
}

// ProviderErrorResponse is returned when the provider rejects a request
type ProviderErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
