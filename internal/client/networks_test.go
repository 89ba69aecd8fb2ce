package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkName(t *testing.T) {
	assert.Equal(t, "Polygon Mainnet", NetworkName(137))
	assert.Equal(t, "Sepolia Testnet", NetworkName(11155111))
	assert.Equal(t, "Network 42", NetworkName(42))
}

func TestPolygonNetwork(t *testing.T) {
	n := PolygonNetwork("https://polygon-rpc.com/")
	require.NoError(t, n.Validate())
	assert.Equal(t, "0x89", n.HexChainID())
	assert.Equal(t, "MATIC", n.NativeCurrency.Symbol)
	assert.Equal(t, "https://polygonscan.com/tx/0xabc", n.TxURL("0xabc"))
}

func TestRegistryLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
networks:
  - chainId: 80002
    rpcUrls: [https://rpc-amoy.polygon.technology]
    nativeCurrency: {name: POL, symbol: POL, decimals: 18}
`), 0600))

	r := NewNetworkRegistry(PolygonNetwork("https://polygon-rpc.com/"))
	require.NoError(t, r.LoadFile(path))

	n, ok := r.Get(80002)
	require.True(t, ok)
	assert.Equal(t, "Network 80002", n.Name)
	assert.Len(t, r.List(), 2)
	assert.Equal(t, int64(137), r.List()[0].ChainID)
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewNetworkRegistry()
	assert.Error(t, r.Add(Network{ChainID: 5}))
	assert.Error(t, r.Add(Network{RPCURLs: []string{"http://x"}}))
}
