package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MethodApprove is the ERC-20 approve method name
const MethodApprove = "approve"

// TokenClient wraps an ERC-20 token contract
type TokenClient struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
}

// NewTokenClient binds the ERC-20 token at address.
// transactor may be nil for a read-only client.
func NewTokenClient(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor) (*TokenClient, error) {
	parsed, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}
	return &TokenClient{
		abi:      parsed,
		address:  address,
		contract: bind.NewBoundContract(address, parsed, caller, transactor, nil),
	}, nil
}

// Address returns the token address
func (t *TokenClient) Address() common.Address {
	return t.address
}

// Pack encodes calldata for method
func (t *TokenClient) Pack(method string, args ...any) ([]byte, error) {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return data, nil
}

// BalanceOf returns the token balance of owner in base units
func (t *TokenClient) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return callBig(ctx, t.contract, "balanceOf", owner)
}

// Decimals returns the token decimals
func (t *TokenClient) Decimals(ctx context.Context) (uint8, error) {
	out, err := call(ctx, t.contract, "decimals")
	if err != nil {
		return 0, err
	}
	v, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected decimals result type %T", out[0])
	}
	return v, nil
}

// Symbol returns the token symbol
func (t *TokenClient) Symbol(ctx context.Context) (string, error) {
	return callString(ctx, t.contract, "symbol")
}

// Name returns the token name
func (t *TokenClient) Name(ctx context.Context) (string, error) {
	return callString(ctx, t.contract, "name")
}

// Allowance returns how much spender may move on behalf of owner
func (t *TokenClient) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return callBig(ctx, t.contract, "allowance", owner, spender)
}

// Approve allows spender to move amount base units
func (t *TokenClient) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, MethodApprove, spender, amount)
}

// Transfer sends amount base units to to
func (t *TokenClient) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, amount)
}
