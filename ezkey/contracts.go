package ezkey

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// KeyReader is the read side of the EzKey contract
type KeyReader interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index *big.Int) (*big.Int, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	GetUserLevel(ctx context.Context, user common.Address) (*big.Int, error)
	CanUserClaim(ctx context.Context, user common.Address) (bool, error)
	GetClaimCooldown(ctx context.Context) (*big.Int, error)
	GetLastClaimTime(ctx context.Context, user common.Address) (*big.Int, error)
	CalculateBurnReward(ctx context.Context, user common.Address) (*big.Int, error)
	InternalPolBalances(ctx context.Context, user common.Address) (*big.Int, error)
	InternalSushiBalances(ctx context.Context, user common.Address) (*big.Int, error)
	GetInternalPolBalance(ctx context.Context, user common.Address) (*big.Int, error)
	GetInternalSushiBalance(ctx context.Context, user common.Address) (*big.Int, error)
	HolderWords(ctx context.Context, user common.Address) ([]*big.Int, error)
}

// KeyWriter is the write side of the EzKey contract
type KeyWriter interface {
	Address() common.Address
	Pack(method string, args ...any) ([]byte, error)
	MintKey(opts *bind.TransactOpts) (*types.Transaction, error)
	ClaimReward(opts *bind.TransactOpts) (*types.Transaction, error)
	UpgradeToSilver(opts *bind.TransactOpts) (*types.Transaction, error)
	UpgradeToGold(opts *bind.TransactOpts) (*types.Transaction, error)
	BurnKeyForEzoch(opts *bind.TransactOpts) (*types.Transaction, error)
	TransferFrom(opts *bind.TransactOpts, from, to common.Address, tokenID *big.Int) (*types.Transaction, error)
}

// KeyContract is the full EzKey contract surface
type KeyContract interface {
	KeyReader
	KeyWriter
}

// TokenContract is the ERC-20 surface used for EZOCH
type TokenContract interface {
	Address() common.Address
	Pack(method string, args ...any) ([]byte, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
	Symbol(ctx context.Context) (string, error)
	Name(ctx context.Context) (string, error)
	Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

// Chain is the node access used for confirmations, estimates and code checks
type Chain interface {
	bind.ContractCaller
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
}

// Contracts groups the contract handles bound to one RPC backend
type Contracts struct {
	Key   KeyContract
	Token TokenContract
	Chain Chain
	// NewToken binds an arbitrary ERC-20, used by the contract checker
	NewToken func(address common.Address) (TokenContract, error)
}

// ContractsFactory binds the contracts to a backend
type ContractsFactory func(backend client.Backend) (*Contracts, error)

// Addresses are the deployed contract addresses
type Addresses struct {
	EzKey common.Address
	Ezoch common.Address
}

// NewContractsFactory returns a factory binding go-ethereum clients at addrs
func NewContractsFactory(addrs Addresses) ContractsFactory {
	return func(backend client.Backend) (*Contracts, error) {
		key, err := client.NewEzKeyClient(addrs.EzKey, backend, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to bind EzKey contract: %w", err)
		}
		token, err := client.NewTokenClient(addrs.Ezoch, backend, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to bind EZOCH contract: %w", err)
		}
		return &Contracts{
			Key:   key,
			Token: token,
			Chain: backend,
			NewToken: func(address common.Address) (TokenContract, error) {
				return client.NewTokenClient(address, backend, nil)
			},
		}, nil
	}
}
