package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the chain access used by the contract clients and the provider.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rawURL string) (Backend, error)

// DialEthclient dials the RPC endpoint with go-ethereum's ethclient
func DialEthclient(ctx context.Context, rawURL string) (Backend, error) {
	c, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rawURL, err)
	}
	return c, nil
}

// HasCode reports whether address holds contract code
func HasCode(ctx context.Context, caller bind.ContractCaller, address common.Address) (bool, error) {
	code, err := caller.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get code: %w", err)
	}
	return len(code) > 0, nil
}

func call(ctx context.Context, contract *bind.BoundContract, method string, args ...any) ([]any, error) {
	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("failed to call %s: %w", method, errEmptyResult)
	}
	return out, nil
}

var errEmptyResult = errors.New("empty result")

func callBig(ctx context.Context, contract *bind.BoundContract, method string, args ...any) (*big.Int, error) {
	out, err := call(ctx, contract, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s result type %T", method, out[0])
	}
	return v, nil
}

func callBool(ctx context.Context, contract *bind.BoundContract, method string, args ...any) (bool, error) {
	out, err := call(ctx, contract, method, args...)
	if err != nil {
		return false, err
	}
	v, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected %s result type %T", method, out[0])
	}
	return v, nil
}

func callString(ctx context.Context, contract *bind.BoundContract, method string, args ...any) (string, error) {
	out, err := call(ctx, contract, method, args...)
	if err != nil {
		return "", err
	}
	v, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s result type %T", method, out[0])
	}
	return v, nil
}
