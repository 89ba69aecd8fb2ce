package ezkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/metrics"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WalletProvider is the wallet a session signs and reads through.
// *client.LocalProvider implements it.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]ethcommon.Address, error)
	ChainID(ctx context.Context) (int64, error)
	Request(ctx context.Context, method string, params json.RawMessage) (any, error)
	TransactOpts(ctx context.Context, request string) (*bind.TransactOpts, error)
	Backend() (client.Backend, error)
}

// PriceSource quotes MATIC in USD
type PriceSource interface {
	GetMATICtoUSDrate(ctx context.Context) (string, error)
}

// Options configures a Wallet
type Options struct {
	Required   client.Network
	GasLimit   uint64
	Strategies []BalanceStrategy
	Metadata   MetadataFetcher
	Prices     PriceSource
	Now        func() time.Time
	Logger     *zap.Logger
}

// Wallet connects sessions to the deployed contracts through one provider
type Wallet struct {
	provider WalletProvider
	factory  ContractsFactory
	opts     Options
	guard    *NetworkGuard
	view     *ViewBuilder
	balances *BalanceReader
	log      *zap.Logger
}

// NewWallet creates a Wallet
func NewWallet(provider WalletProvider, factory ContractsFactory, opts Options) *Wallet {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	balances := NewBalanceReader(opts.Strategies, opts.Logger.Named("balances"))
	return &Wallet{
		provider: provider,
		factory:  factory,
		opts:     opts,
		guard:    NewNetworkGuard(provider, opts.Required),
		view:     NewViewBuilder(balances, opts.Metadata, opts.Now, opts.Logger.Named("view")),
		balances: balances,
		log:      opts.Logger,
	}
}

// Provider returns the underlying wallet provider
func (w *Wallet) Provider() WalletProvider {
	return w.provider
}

// Guard returns the network guard
func (w *Wallet) Guard() *NetworkGuard {
	return w.guard
}

// Connect requests the wallet account and opens a session for it
func (w *Wallet) Connect(ctx context.Context) (*Session, error) {
	accounts, err := w.provider.RequestAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect wallet: %w", err)
	}
	if len(accounts) == 0 {
		return nil, &ActionError{Kind: KindNoWallet, Message: kindMessages[KindNoWallet]}
	}

	s := &Session{
		id:        uuid.NewString(),
		address:   accounts[0],
		wallet:    w,
		createdAt: w.opts.Now(),
		log:       w.log.With(zap.String("address", accounts[0].Hex())),
	}
	s.log = s.log.With(zap.String("session", s.id))
	metrics.Sessions.Inc()
	s.log.Info("session opened")
	return s, nil
}

// contracts binds the contracts on the active backend after checking the network
func (w *Wallet) contracts(ctx context.Context) (*Contracts, error) {
	if err := w.guard.Ensure(ctx); err != nil {
		return nil, err
	}
	return w.bind()
}

func (w *Wallet) bind() (*Contracts, error) {
	backend, err := w.provider.Backend()
	if err != nil {
		return nil, fmt.Errorf("failed to get backend: %w", err)
	}
	return w.factory(backend)
}

// Session is the state of one connected wallet. It is created by Connect and
// torn down by Close. The snapshot is replaced wholesale on every refresh.
type Session struct {
	id        string
	address   ethcommon.Address
	wallet    *Wallet
	createdAt time.Time
	log       *zap.Logger

	snapshot atomic.Pointer[model.UserSnapshot]
	actionMu sync.Mutex
	closed   atomic.Bool
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Address returns the connected account
func (s *Session) Address() ethcommon.Address {
	return s.address
}

// Network reports the wallet's chain against the required one
func (s *Session) Network(ctx context.Context) (model.NetworkStatus, error) {
	return s.wallet.guard.Check(ctx)
}

// SwitchNetwork asks the wallet to move to the required network and reports the result
func (s *Session) SwitchNetwork(ctx context.Context) (model.NetworkStatus, error) {
	if err := s.wallet.guard.Switch(ctx); err != nil {
		s.log.Warn("network switch failed", zap.Error(err))
		return model.NetworkStatus{}, err
	}
	return s.wallet.guard.Check(ctx)
}

// Snapshot returns the latest snapshot, nil before the first refresh
func (s *Session) Snapshot() *model.UserSnapshot {
	return s.snapshot.Load()
}

// Refresh rebuilds the snapshot from the contracts and swaps it in
func (s *Session) Refresh(ctx context.Context) (*model.UserSnapshot, error) {
	if s.closed.Load() {
		return nil, errSessionClosed
	}
	c, err := s.wallet.contracts(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.wallet.view.Build(ctx, c, s.address)
	if err != nil {
		s.log.Warn("snapshot refresh failed", zap.Error(err))
		return nil, err
	}
	s.snapshot.Store(snap)
	return snap, nil
}

// Probe runs every configured balance strategy for the session account
func (s *Session) Probe(ctx context.Context) (*model.BalanceProbeResponse, error) {
	c, err := s.wallet.contracts(ctx)
	if err != nil {
		return nil, err
	}
	return &model.BalanceProbeResponse{
		Address: s.address.Hex(),
		Results: s.wallet.balances.Probe(ctx, c.Key, s.address),
	}, nil
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		metrics.Sessions.Dec()
		s.snapshot.Store(nil)
		s.log.Info("session closed", zap.Duration("age", time.Since(s.createdAt)))
	}
}

var errSessionClosed = errors.New("session is closed")

// Registry keeps open sessions by id
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add stores s
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get returns the session with id
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove closes and forgets the session with id
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// Len returns the number of open sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll closes every session
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
