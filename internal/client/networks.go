package client

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"
)

// Known chain ids
const (
	ChainIDEthereum = 1
	ChainIDBSC      = 56
	ChainIDPolygon  = 137
	ChainIDMumbai   = 80001
	ChainIDSepolia  = 11155111
)

var chainNames = map[int64]string{
	ChainIDEthereum: "Ethereum Mainnet",
	ChainIDPolygon:  "Polygon Mainnet",
	ChainIDSepolia:  "Sepolia Testnet",
	ChainIDMumbai:   "Polygon Mumbai Testnet",
	ChainIDBSC:      "BSC Mainnet",
}

// NetworkName returns the display name of chainID
func NetworkName(chainID int64) string {
	if name, ok := chainNames[chainID]; ok {
		return name
	}
	return fmt.Sprintf("Network %d", chainID)
}

// NativeCurrency describes the gas token of a network
type NativeCurrency struct {
	Name     string `yaml:"name" json:"name"`
	Symbol   string `yaml:"symbol" json:"symbol"`
	Decimals int    `yaml:"decimals" json:"decimals"`
}

// Network is a chainlist style network definition
type Network struct {
	ChainID        int64          `yaml:"chainId" json:"chainId"`
	Name           string         `yaml:"name" json:"chainName"`
	RPCURLs        []string       `yaml:"rpcUrls" json:"rpcUrls"`
	ExplorerURL    string         `yaml:"explorerUrl" json:"explorerUrl,omitempty"`
	NativeCurrency NativeCurrency `yaml:"nativeCurrency" json:"nativeCurrency"`
}

// HexChainID returns the 0x-prefixed chain id used by wallet requests
func (n Network) HexChainID() string {
	return hexutil.EncodeUint64(uint64(n.ChainID))
}

// Validate checks the fields a wallet needs to add the network
func (n Network) Validate() error {
	if n.ChainID <= 0 {
		return errors.New("chainId must be positive")
	}
	if len(n.RPCURLs) == 0 || n.RPCURLs[0] == "" {
		return errors.New("rpcUrls must not be empty")
	}
	if n.NativeCurrency.Symbol == "" {
		return errors.New("nativeCurrency.symbol must not be empty")
	}
	return nil
}

// TxURL returns the explorer link of a transaction, empty without explorer
func (n Network) TxURL(txHash string) string {
	if n.ExplorerURL == "" {
		return ""
	}
	base := n.ExplorerURL
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + "tx/" + txHash
}

// PolygonNetwork returns the Polygon Mainnet definition with the given RPC URL
func PolygonNetwork(rpcURL string) Network {
	return Network{
		ChainID:        ChainIDPolygon,
		Name:           NetworkName(ChainIDPolygon),
		RPCURLs:        []string{rpcURL},
		ExplorerURL:    "https://polygonscan.com/",
		NativeCurrency: NativeCurrency{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
	}
}

// NetworkRegistry holds the networks the local wallet knows about
type NetworkRegistry struct {
	mu       sync.RWMutex
	networks map[int64]Network
}

// NewNetworkRegistry creates a registry with the given networks
func NewNetworkRegistry(networks ...Network) *NetworkRegistry {
	r := &NetworkRegistry{networks: make(map[int64]Network)}
	for _, n := range networks {
		r.networks[n.ChainID] = n
	}
	return r
}

type networksFile struct {
	Networks []Network `yaml:"networks"`
}

// LoadFile adds every network from a YAML file of the form
//
//	networks:
//	  - chainId: 80002
//	    name: Polygon Amoy
//	    rpcUrls: [https://rpc-amoy.polygon.technology]
//	    nativeCurrency: {name: POL, symbol: POL, decimals: 18}
func (r *NetworkRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read networks file: %w", err)
	}

	var file networksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse networks file: %w", err)
	}

	for _, n := range file.Networks {
		if n.Name == "" {
			n.Name = NetworkName(n.ChainID)
		}
		if err := r.Add(n); err != nil {
			return fmt.Errorf("invalid network %d: %w", n.ChainID, err)
		}
	}
	return nil
}

// Add registers or replaces a network
func (r *NetworkRegistry) Add(n Network) error {
	if err := n.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.networks[n.ChainID] = n
	return nil
}

// Get returns the network for chainID
func (r *NetworkRegistry) Get(chainID int64) (Network, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.networks[chainID]
	return n, ok
}

// List returns all networks ordered by chain id
func (r *NetworkRegistry) List() []Network {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Network, 0, len(r.networks))
	for _, n := range r.networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}
