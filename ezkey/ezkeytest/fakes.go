// Package ezkeytest provides in-memory EzKey contracts and a scripted wallet
// provider for tests.
package ezkeytest

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	User         = ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")
	Other        = ethcommon.HexToAddress("0x2222222222222222222222222222222222222222")
	KeyAddress   = ethcommon.HexToAddress("0xbca0C59Ee51CaA9837EA2f05d541E9936738Ce6b")
	TokenAddress = ethcommon.HexToAddress("0xB7E15E994270A6B251C51B9a7358E10ce0054cd2")

	// ErrReverted is returned by every read whose value is unset
	ErrReverted = errors.New("execution reverted")
)

// Ether parses a decimal amount into 18-decimal base units. It panics on bad input.
func Ether(s string) *big.Int {
	v, err := common.ParseUnits(s, common.EtherDecimals)
	if err != nil {
		panic(err)
	}
	return v
}

// Key is an in-memory EzKey contract. Nil values revert.
type Key struct {
	mu    sync.Mutex
	calls []string

	Owned        *big.Int
	Level        *big.Int
	Claimable    bool
	ID           *big.Int
	URI          string
	Cooldown     *big.Int
	LastClaim    *big.Int
	BurnReward   *big.Int
	MappingPol   *big.Int
	MappingSushi *big.Int
	GetterPol    *big.Int
	GetterSushi  *big.Int
	Holder       []*big.Int

	// Errs fails the named contract method
	Errs map[string]error

	Sent    []string
	SentTo  ethcommon.Address
	LastGas uint64
	SendErr error
}

// NewKey returns a key contract for an account without a key
func NewKey() *Key {
	return &Key{
		Owned:    big.NewInt(0),
		Level:    big.NewInt(0),
		Cooldown: big.NewInt(86400),
		Errs:     map[string]error{},
	}
}

// GiveKey makes the account a bronze holder of token 7 with mapping balances
func (f *Key) GiveKey(pol, sushi string) {
	f.Owned = big.NewInt(1)
	f.ID = big.NewInt(7)
	f.URI = "ipfs://QmKey/7.json"
	f.MappingPol = Ether(pol)
	f.MappingSushi = Ether(sushi)
}

func (f *Key) record(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
	return f.Errs[method]
}

// Called reports whether the contract method was read
func (f *Key) Called(method string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == method {
			return true
		}
	}
	return false
}

func (f *Key) big(method string, v *big.Int) (*big.Int, error) {
	if err := f.record(method); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrReverted
	}
	return v, nil
}

func (f *Key) BalanceOf(ctx context.Context, owner ethcommon.Address) (*big.Int, error) {
	return f.big("balanceOf", f.Owned)
}

func (f *Key) TokenOfOwnerByIndex(ctx context.Context, owner ethcommon.Address, index *big.Int) (*big.Int, error) {
	return f.big("tokenOfOwnerByIndex", f.ID)
}

func (f *Key) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	if err := f.record("tokenURI"); err != nil {
		return "", err
	}
	if f.URI == "" {
		return "", ErrReverted
	}
	return f.URI, nil
}

func (f *Key) GetUserLevel(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("getUserLevel", f.Level)
}

func (f *Key) CanUserClaim(ctx context.Context, user ethcommon.Address) (bool, error) {
	if err := f.record("canUserClaim"); err != nil {
		return false, err
	}
	return f.Claimable, nil
}

func (f *Key) GetClaimCooldown(ctx context.Context) (*big.Int, error) {
	return f.big("getClaimCooldown", f.Cooldown)
}

func (f *Key) GetLastClaimTime(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("getLastClaimTime", f.LastClaim)
}

func (f *Key) CalculateBurnReward(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("calculateBurnReward", f.BurnReward)
}

func (f *Key) InternalPolBalances(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("internalPolBalances", f.MappingPol)
}

func (f *Key) InternalSushiBalances(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("internalSushiBalances", f.MappingSushi)
}

func (f *Key) GetInternalPolBalance(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("getInternalPolBalance", f.GetterPol)
}

func (f *Key) GetInternalSushiBalance(ctx context.Context, user ethcommon.Address) (*big.Int, error) {
	return f.big("getInternalSushiBalance", f.GetterSushi)
}

func (f *Key) HolderWords(ctx context.Context, user ethcommon.Address) ([]*big.Int, error) {
	if err := f.record("holders"); err != nil {
		return nil, err
	}
	if f.Holder == nil {
		return nil, ErrReverted
	}
	return f.Holder, nil
}

func (f *Key) Address() ethcommon.Address { return KeyAddress }

func (f *Key) Pack(method string, args ...any) ([]byte, error) {
	return []byte(method), nil
}

func (f *Key) send(method string, opts *bind.TransactOpts) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	f.Sent = append(f.Sent, method)
	f.LastGas = opts.GasLimit
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.Sent)), Gas: opts.GasLimit, To: &KeyAddress}), nil
}

func (f *Key) MintKey(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.send(client.MethodMintKey, opts)
}

func (f *Key) ClaimReward(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.send(client.MethodClaimReward, opts)
}

func (f *Key) UpgradeToSilver(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.send(client.MethodUpgradeToSilver, opts)
}

func (f *Key) UpgradeToGold(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.send(client.MethodUpgradeToGold, opts)
}

func (f *Key) BurnKeyForEzoch(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.send(client.MethodBurnKey, opts)
}

func (f *Key) TransferFrom(opts *bind.TransactOpts, from, to ethcommon.Address, tokenID *big.Int) (*types.Transaction, error) {
	f.SentTo = to
	return f.send(client.MethodTransferFrom, opts)
}

// Token is an in-memory ERC-20
type Token struct {
	Balance       *big.Int
	DecimalsValue uint8
	SymbolValue   string
	NameValue     string
	Errs          map[string]error

	Approved   *big.Int
	ApprovedTo ethcommon.Address
}

// NewToken returns an empty 18-decimal EZOCH token
func NewToken() *Token {
	return &Token{Balance: big.NewInt(0), DecimalsValue: 18, SymbolValue: "EZOCH", NameValue: "Ezoch", Errs: map[string]error{}}
}

func (f *Token) Address() ethcommon.Address { return TokenAddress }

func (f *Token) Pack(method string, args ...any) ([]byte, error) { return []byte(method), nil }

func (f *Token) BalanceOf(ctx context.Context, owner ethcommon.Address) (*big.Int, error) {
	if err := f.Errs["balanceOf"]; err != nil {
		return nil, err
	}
	return f.Balance, nil
}

func (f *Token) Decimals(ctx context.Context) (uint8, error) {
	if err := f.Errs["decimals"]; err != nil {
		return 0, err
	}
	return f.DecimalsValue, nil
}

func (f *Token) Symbol(ctx context.Context) (string, error) {
	if err := f.Errs["symbol"]; err != nil {
		return "", err
	}
	return f.SymbolValue, nil
}

func (f *Token) Name(ctx context.Context) (string, error) {
	if err := f.Errs["name"]; err != nil {
		return "", err
	}
	return f.NameValue, nil
}

func (f *Token) Approve(opts *bind.TransactOpts, spender ethcommon.Address, amount *big.Int) (*types.Transaction, error) {
	f.Approved = amount
	f.ApprovedTo = spender
	return types.NewTx(&types.LegacyTx{Nonce: 99, Gas: opts.GasLimit, To: &TokenAddress}), nil
}

// Chain confirms every transaction with a fixed receipt status
type Chain struct {
	Code        []byte
	Status      uint64
	Gas         uint64
	GasPrice    *big.Int
	EstimateErr error
	// OnReceipt runs before each receipt lookup
	OnReceipt func()
}

// NewChain returns a chain that mines successfully at 30 gwei
func NewChain() *Chain {
	return &Chain{Code: []byte{0x60}, Status: types.ReceiptStatusSuccessful, Gas: 100000, GasPrice: big.NewInt(30_000_000_000)}
}

func (f *Chain) CodeAt(ctx context.Context, contract ethcommon.Address, blockNumber *big.Int) ([]byte, error) {
	return f.Code, nil
}

func (f *Chain) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return nil, ErrReverted
}

func (f *Chain) TransactionReceipt(ctx context.Context, txHash ethcommon.Hash) (*types.Receipt, error) {
	if f.OnReceipt != nil {
		f.OnReceipt()
	}
	return &types.Receipt{Status: f.Status, TxHash: txHash, BlockNumber: big.NewInt(42), GasUsed: 51234}, nil
}

func (f *Chain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return f.GasPrice, nil
}

func (f *Chain) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if f.EstimateErr != nil {
		return 0, f.EstimateErr
	}
	return f.Gas, nil
}

// Provider is a scripted wallet provider. A successful switch or add moves it to Polygon.
type Provider struct {
	mu        sync.Mutex
	Chain     int64
	Accounts  []ethcommon.Address
	ConnErr   error
	SwitchErr error
	AddErr    error
	RejectTx  bool
	Requests  []string
	Summaries []string
}

// NewProvider returns a provider for User on chainID
func NewProvider(chainID int64) *Provider {
	return &Provider{Chain: chainID, Accounts: []ethcommon.Address{User}}
}

func (f *Provider) RequestAccounts(ctx context.Context) ([]ethcommon.Address, error) {
	if f.ConnErr != nil {
		return nil, f.ConnErr
	}
	return f.Accounts, nil
}

func (f *Provider) ChainID(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Chain, nil
}

func (f *Provider) Request(ctx context.Context, method string, params json.RawMessage) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, method)
	switch method {
	case client.MethodSwitchChain:
		if f.SwitchErr != nil {
			return nil, f.SwitchErr
		}
		f.Chain = client.ChainIDPolygon
	case client.MethodAddChain:
		if f.AddErr != nil {
			return nil, f.AddErr
		}
		f.Chain = client.ChainIDPolygon
	case client.MethodChainID:
		return "0x89", nil
	}
	return nil, nil
}

func (f *Provider) TransactOpts(ctx context.Context, request string) (*bind.TransactOpts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Summaries = append(f.Summaries, request)
	if f.RejectTx {
		return nil, &client.ProviderError{Code: client.CodeUserRejected, Message: "User rejected the request."}
	}
	return &bind.TransactOpts{From: User, Context: ctx}, nil
}

func (f *Provider) Backend() (client.Backend, error) {
	return nil, nil
}

// Metadata serves one document or an error
type Metadata struct {
	Meta *model.TokenMetadata
	Err  error
	URIs []string
}

func (f *Metadata) Fetch(ctx context.Context, uri string) (*model.TokenMetadata, error) {
	f.URIs = append(f.URIs, uri)
	return f.Meta, f.Err
}

// Prices quotes a fixed MATIC rate
type Prices struct {
	Rate string
	Err  error
}

func (f Prices) GetMATICtoUSDrate(ctx context.Context) (string, error) {
	return f.Rate, f.Err
}
