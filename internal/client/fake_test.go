package client

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

// fakeCaller answers eth_call by ABI-packing canned outputs per method
type fakeCaller struct {
	abi     abi.ABI
	outputs map[string][]any
	raw     map[string][]byte
	code    []byte
	calls   []string
}

func newFakeCaller(t *testing.T, abiJSON string) *fakeCaller {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)
	return &fakeCaller{
		abi:     parsed,
		outputs: map[string][]any{},
		raw:     map[string][]byte{},
		code:    []byte{0x60, 0x80},
	}
}

func (f *fakeCaller) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return f.code, nil
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	m, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, m.Name)
	if raw, ok := f.raw[m.Name]; ok {
		return raw, nil
	}
	out, ok := f.outputs[m.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return m.Outputs.Pack(out...)
}

// fakeBackend is a Backend reporting a fixed chain id
type fakeBackend struct {
	bind.ContractBackend
	chainID int64
	closed  bool
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(f.chainID), nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return nil, ethereum.NotFound
}

func (f *fakeBackend) Close() {
	f.closed = true
}

// fakeDialer maps RPC URLs to chain ids and remembers the backends it opened
type fakeDialer struct {
	chains   map[string]int64
	backends []*fakeBackend
}

func (d *fakeDialer) Dial(ctx context.Context, rawURL string) (Backend, error) {
	id, ok := d.chains[rawURL]
	if !ok {
		return nil, errors.New("connection refused")
	}
	b := &fakeBackend{chainID: id}
	d.backends = append(d.backends, b)
	return b, nil
}
