package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	maticCoinID  = "matic-network"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client. Empty baseURL uses the public API.
func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PriceResponse response from CoinGecko API
type PriceResponse struct {
	MaticNetwork struct {
		USD json.Number `json:"usd"`
	} `json:"matic-network"`
}

// GetMATICtoUSDrate gets the MATIC price in USD as a decimal string
func (c *CoinGeckoClient) GetMATICtoUSDrate(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, maticCoinID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp PriceResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&priceResp); err != nil {
		return "", fmt.Errorf("failed to decode rate: %w", err)
	}

	rate := priceResp.MaticNetwork.USD.String()
	if rate == "" || rate == "0" {
		return "", errors.New("failed to get rate: price not available")
	}
	return rate, nil
}
