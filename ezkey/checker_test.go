package ezkey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContract(t *testing.T) {
	f := newFixture()

	resp, err := f.wallet.CheckContract(context.Background(), strings.ToLower(tokenAddr.Hex()))
	require.NoError(t, err)
	assert.Equal(t, tokenAddr.Hex(), resp.Address)
	assert.True(t, resp.Valid)
	assert.True(t, resp.IsContract)
	assert.True(t, resp.IsToken)
	assert.Equal(t, "Ezoch", resp.Name)
	assert.Equal(t, "EZOCH", resp.Symbol)
	assert.Equal(t, uint8(18), resp.Decimals)
	assert.Empty(t, resp.Error)
}

func TestCheckContractRejects(t *testing.T) {
	f := newFixture()

	resp, err := f.wallet.CheckContract(context.Background(), "0xnothex")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "invalid address", resp.Error)

	f.chain.Code = nil
	resp, err = f.wallet.CheckContract(context.Background(), testOther.Hex())
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.False(t, resp.IsContract)
	assert.Equal(t, "not a contract", resp.Error)

	f.chain.Code = []byte{0x60}
	f.token.Errs["name"] = errors.New("execution reverted")
	resp, err = f.wallet.CheckContract(context.Background(), testOther.Hex())
	require.NoError(t, err)
	assert.True(t, resp.IsContract)
	assert.False(t, resp.IsToken)
	assert.Equal(t, "not a valid ERC-20 token", resp.Error)
}
