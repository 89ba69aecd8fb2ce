package client

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Provider error codes (EIP-1193 and JSON-RPC)
const (
	CodeUserRejected  = 4001
	CodeUnauthorized  = 4100
	CodeUnsupported   = 4200
	CodeUnknownChain  = 4902
	CodeInvalidParams = -32602
	CodeInternal      = -32603
)

// Provider request methods
const (
	MethodRequestAccounts = "eth_requestAccounts"
	MethodAccounts        = "eth_accounts"
	MethodChainID         = "eth_chainId"
	MethodSwitchChain     = "wallet_switchEthereumChain"
	MethodAddChain        = "wallet_addEthereumChain"
)

// ProviderError is a coded wallet provider error
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ErrorCode returns the provider code, matching go-ethereum's rpc.Error
func (e *ProviderError) ErrorCode() int {
	return e.Code
}

// IsProviderError reports whether err carries a ProviderError with code
func IsProviderError(err error, code int) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}

func errUserRejected() error {
	return &ProviderError{Code: CodeUserRejected, Message: "User rejected the request."}
}

func errInvalidParams(format string, args ...any) error {
	return &ProviderError{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// Approver confirms wallet requests that need the holder's consent
type Approver interface {
	Approve(ctx context.Context, request string) (bool, error)
}

// ApproverFunc adapts a function to Approver
type ApproverFunc func(ctx context.Context, request string) (bool, error)

// Approve calls f
func (f ApproverFunc) Approve(ctx context.Context, request string) (bool, error) {
	return f(ctx, request)
}

// AutoApprove approves every request. The HTTP server uses it: the API call is the confirmation.
var AutoApprove Approver = ApproverFunc(func(context.Context, string) (bool, error) { return true, nil })

// LocalProviderOptions configures NewLocalProvider
type LocalProviderOptions struct {
	Networks *NetworkRegistry
	RPCURL   string            // network the wallet starts on
	Key      *ecdsa.PrivateKey // nil when no keystore is loaded
	Approver Approver
	Dial     DialFunc
	Logger   *zap.Logger
}

// LocalProvider is a wallet provider backed by the local keystore key
type LocalProvider struct {
	networks *NetworkRegistry
	key      *ecdsa.PrivateKey
	address  common.Address
	approver Approver
	dial     DialFunc
	log      *zap.Logger

	mu         sync.RWMutex
	backend    Backend
	chainID    int64
	authorized bool
	// backends of previously active chains stay open until Close: an action
	// may still be waiting for its receipt on one of them
	retired map[int64]Backend
}

// NewLocalProvider dials the starting network and returns the provider
func NewLocalProvider(ctx context.Context, opts LocalProviderOptions) (*LocalProvider, error) {
	if opts.Networks == nil {
		opts.Networks = NewNetworkRegistry()
	}
	if opts.Approver == nil {
		opts.Approver = AutoApprove
	}
	if opts.Dial == nil {
		opts.Dial = DialEthclient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := &LocalProvider{
		networks: opts.Networks,
		key:      opts.Key,
		approver: opts.Approver,
		dial:     opts.Dial,
		log:      opts.Logger,
		retired:  make(map[int64]Backend),
	}
	if opts.Key != nil {
		p.address = crypto.PubkeyToAddress(opts.Key.PublicKey)
	}

	backend, err := p.dial(ctx, opts.RPCURL)
	if err != nil {
		return nil, err
	}
	id, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	chainID := id.Int64()

	if _, ok := p.networks.Get(chainID); !ok {
		_ = p.networks.Add(Network{
			ChainID:        chainID,
			Name:           NetworkName(chainID),
			RPCURLs:        []string{opts.RPCURL},
			NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		})
	}

	p.backend = backend
	p.chainID = chainID
	p.log.Info("wallet provider ready", zap.Int64("chainId", chainID), zap.Bool("hasKey", opts.Key != nil))
	return p, nil
}

// Networks returns the provider's network registry
func (p *LocalProvider) Networks() *NetworkRegistry {
	return p.networks
}

// SetKey loads a keystore key, replacing the current one. Authorization is reset.
func (p *LocalProvider) SetKey(key *ecdsa.PrivateKey) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.key = key
	p.address = common.Address{}
	if key != nil {
		p.address = crypto.PubkeyToAddress(key.PublicKey)
	}
	p.authorized = false
	p.log.Info("wallet key loaded", zap.String("address", p.address.Hex()))
}

// HasKey reports whether a keystore key is loaded
func (p *LocalProvider) HasKey() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.key != nil
}

// RequestAccounts authorizes the keystore account for the caller
func (p *LocalProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	p.mu.RLock()
	key, address, authorized := p.key, p.address, p.authorized
	p.mu.RUnlock()
	if key == nil {
		return nil, &ProviderError{Code: CodeUnauthorized, Message: "no wallet keystore loaded"}
	}

	if !authorized {
		if err := p.approve(ctx, fmt.Sprintf("connect account %s", address.Hex())); err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.authorized = true
		p.mu.Unlock()
	}
	return []common.Address{address}, nil
}

// Accounts returns the authorized accounts without prompting
func (p *LocalProvider) Accounts() []common.Address {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.authorized {
		return []common.Address{}
	}
	return []common.Address{p.address}
}

// ChainID returns the chain id of the active network
func (p *LocalProvider) ChainID(ctx context.Context) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.backend == nil {
		return 0, &ProviderError{Code: CodeInternal, Message: "provider is closed"}
	}
	return p.chainID, nil
}

// Backend returns the RPC backend of the active network
func (p *LocalProvider) Backend() (Backend, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.backend == nil {
		return nil, &ProviderError{Code: CodeInternal, Message: "provider is closed"}
	}
	return p.backend, nil
}

// Network returns the definition of the active network
func (p *LocalProvider) Network() Network {
	p.mu.RLock()
	chainID := p.chainID
	p.mu.RUnlock()
	if n, ok := p.networks.Get(chainID); ok {
		return n
	}
	return Network{ChainID: chainID, Name: NetworkName(chainID)}
}

// SwitchChain activates a known network. Unknown chains fail with code 4902.
func (p *LocalProvider) SwitchChain(ctx context.Context, chainID int64) error {
	n, ok := p.networks.Get(chainID)
	if !ok {
		return &ProviderError{
			Code:    CodeUnknownChain,
			Message: fmt.Sprintf("Unrecognized chain ID %q. Try adding the chain using wallet_addEthereumChain first.", hexutil.EncodeUint64(uint64(chainID))),
		}
	}

	p.mu.RLock()
	current := p.chainID
	p.mu.RUnlock()
	if current == chainID {
		return nil
	}

	if err := p.approve(ctx, fmt.Sprintf("switch network to %s", n.Name)); err != nil {
		return err
	}
	return p.activate(ctx, n)
}

// AddChain registers a network definition and switches to it
func (p *LocalProvider) AddChain(ctx context.Context, n Network) error {
	if err := n.Validate(); err != nil {
		return errInvalidParams("invalid network: %v", err)
	}
	if n.Name == "" {
		n.Name = NetworkName(n.ChainID)
	}

	if err := p.approve(ctx, fmt.Sprintf("add network %s (chain %d)", n.Name, n.ChainID)); err != nil {
		return err
	}
	if err := p.activate(ctx, n); err != nil {
		return err
	}
	return p.networks.Add(n)
}

// TransactOpts returns signing options for one transaction once the holder approves it
func (p *LocalProvider) TransactOpts(ctx context.Context, request string) (*bind.TransactOpts, error) {
	p.mu.RLock()
	key, authorized, chainID := p.key, p.authorized, p.chainID
	p.mu.RUnlock()
	if key == nil {
		return nil, &ProviderError{Code: CodeUnauthorized, Message: "no wallet keystore loaded"}
	}
	if !authorized {
		return nil, &ProviderError{Code: CodeUnauthorized, Message: "account not authorized: request accounts first"}
	}

	if err := p.approve(ctx, request); err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// Close releases the RPC backend
func (p *LocalProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Close()
		p.backend = nil
	}
	for id, b := range p.retired {
		b.Close()
		delete(p.retired, id)
	}
}

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

type addChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

// Request dispatches a string-method provider request with JSON params
func (p *LocalProvider) Request(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case MethodRequestAccounts:
		accounts, err := p.RequestAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return hexAddresses(accounts), nil

	case MethodAccounts:
		return hexAddresses(p.Accounts()), nil

	case MethodChainID:
		id, err := p.ChainID(ctx)
		if err != nil {
			return nil, err
		}
		return hexutil.EncodeUint64(uint64(id)), nil

	case MethodSwitchChain:
		var args []switchChainParams
		if err := json.Unmarshal(params, &args); err != nil || len(args) != 1 {
			return nil, errInvalidParams("expected [{chainId}]")
		}
		id, err := hexutil.DecodeUint64(args[0].ChainID)
		if err != nil {
			return nil, errInvalidParams("invalid chainId %q", args[0].ChainID)
		}
		return nil, p.SwitchChain(ctx, int64(id))

	case MethodAddChain:
		var args []addChainParams
		if err := json.Unmarshal(params, &args); err != nil || len(args) != 1 {
			return nil, errInvalidParams("expected [{chainId, chainName, nativeCurrency, rpcUrls}]")
		}
		id, err := hexutil.DecodeUint64(args[0].ChainID)
		if err != nil {
			return nil, errInvalidParams("invalid chainId %q", args[0].ChainID)
		}
		n := Network{
			ChainID:        int64(id),
			Name:           args[0].ChainName,
			RPCURLs:        args[0].RPCURLs,
			NativeCurrency: args[0].NativeCurrency,
		}
		if len(args[0].BlockExplorerURLs) > 0 {
			n.ExplorerURL = args[0].BlockExplorerURLs[0]
		}
		return nil, p.AddChain(ctx, n)

	default:
		return nil, &ProviderError{Code: CodeUnsupported, Message: fmt.Sprintf("method %s is not supported", method)}
	}
}

// AddChainParams renders n as wallet_addEthereumChain params
func AddChainParams(n Network) json.RawMessage {
	params := addChainParams{
		ChainID:        n.HexChainID(),
		ChainName:      n.Name,
		NativeCurrency: n.NativeCurrency,
		RPCURLs:        n.RPCURLs,
	}
	if n.ExplorerURL != "" {
		params.BlockExplorerURLs = []string{n.ExplorerURL}
	}
	raw, _ := json.Marshal([]addChainParams{params})
	return raw
}

// SwitchChainParams renders chainID as wallet_switchEthereumChain params
func SwitchChainParams(chainID int64) json.RawMessage {
	raw, _ := json.Marshal([]switchChainParams{{ChainID: hexutil.EncodeUint64(uint64(chainID))}})
	return raw
}

func (p *LocalProvider) approve(ctx context.Context, request string) error {
	ok, err := p.approver.Approve(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to confirm request: %w", err)
	}
	if !ok {
		p.log.Info("wallet request rejected", zap.String("request", request))
		return errUserRejected()
	}
	return nil
}

// activate makes n the active network. A backend kept from an earlier switch
// to the same chain is reused.
func (p *LocalProvider) activate(ctx context.Context, n Network) error {
	p.mu.Lock()
	backend, ok := p.retired[n.ChainID]
	delete(p.retired, n.ChainID)
	p.mu.Unlock()

	if !ok {
		var err error
		if backend, err = p.dialChecked(ctx, n); err != nil {
			return err
		}
	}

	p.mu.Lock()
	if p.backend != nil {
		p.retired[p.chainID] = p.backend
	}
	p.backend = backend
	p.chainID = n.ChainID
	p.mu.Unlock()

	p.log.Info("wallet network switched", zap.Int64("chainId", n.ChainID), zap.String("name", n.Name), zap.Bool("reused", ok))
	return nil
}

// dialChecked dials the first RPC URL of n and checks it serves n's chain
func (p *LocalProvider) dialChecked(ctx context.Context, n Network) (Backend, error) {
	backend, err := p.dial(ctx, n.RPCURLs[0])
	if err != nil {
		return nil, &ProviderError{Code: CodeInternal, Message: err.Error()}
	}
	id, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		return nil, &ProviderError{Code: CodeInternal, Message: fmt.Sprintf("failed to get chain id: %v", err)}
	}
	if id.Int64() != n.ChainID {
		backend.Close()
		return nil, &ProviderError{Code: CodeInternal, Message: fmt.Sprintf("rpc endpoint reports chain %d, expected %d", id.Int64(), n.ChainID)}
	}
	return backend, nil
}

func hexAddresses(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}
