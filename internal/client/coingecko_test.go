package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMATICtoUSDrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "matic-network", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"matic-network":{"usd":0.2134}}`))
	}))
	defer srv.Close()

	rate, err := NewCoinGeckoClient(srv.URL).GetMATICtoUSDrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.2134", rate)
}

func TestGetMATICtoUSDrateErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") == "" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL).GetMATICtoUSDrate(context.Background())
	assert.ErrorContains(t, err, "price not available")
}
