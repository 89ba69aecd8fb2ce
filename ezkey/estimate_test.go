package ezkey

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/ezkey-wallet/ezkey/ezkeytest"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	f := newFixture()
	f.wallet.opts.Prices = ezkeytest.Prices{Rate: "2000"}
	f.token.Balance = ether("100")
	s := connect(t, f)

	est, err := s.Estimate(context.Background(), ActionMint, ActionParams{})
	require.NoError(t, err)
	assert.True(t, est.Available)
	assert.Equal(t, "mint", est.Action)
	assert.Equal(t, uint64(100000), est.GasUnits)
	assert.Equal(t, "30.00", est.GasPrice)
	assert.Equal(t, "0.003000", est.CostMATIC)
	assert.Equal(t, "6.00", est.CostUSD)
	assert.Empty(t, f.key.Sent)
	assert.Empty(t, f.provider.Summaries)
}

func TestEstimateWithoutPrice(t *testing.T) {
	f := newFixture()
	f.wallet.opts.Prices = ezkeytest.Prices{Err: errors.New("price not available")}
	f.token.Balance = ether("100")
	s := connect(t, f)

	est, err := s.Estimate(context.Background(), ActionMint, ActionParams{})
	require.NoError(t, err)
	assert.True(t, est.Available)
	assert.Empty(t, est.CostUSD)
}

func TestEstimateUnavailable(t *testing.T) {
	f := newFixture()
	f.holder("1", "1")
	f.token.Balance = ether("100")
	s := connect(t, f)

	est, err := s.Estimate(context.Background(), ActionMint, ActionParams{})
	require.NoError(t, err)
	assert.False(t, est.Available)
	assert.Equal(t, "you already own an EzKey", est.Error)

	f.chain.EstimateErr = errors.New("execution reverted: cooldown active")
	est, err = s.Estimate(context.Background(), ActionClaim, ActionParams{})
	require.NoError(t, err)
	assert.False(t, est.Available)
	assert.Equal(t, "Transaction rejected by the contract. Check the conditions.", est.Error)

	est, err = s.Estimate(context.Background(), ActionUpgradeGold, ActionParams{})
	require.NoError(t, err)
	assert.False(t, est.Available)
	assert.Equal(t, "only Silver holders can do this upgrade", est.Error)
}

func TestEstimateWrongNetwork(t *testing.T) {
	f := newFixture()
	f.provider.Chain = client.ChainIDEthereum
	s := connect(t, f)

	_, err := s.Estimate(context.Background(), ActionMint, ActionParams{})
	assert.True(t, IsWrongNetworkError(err))
}

func TestCostInUSD(t *testing.T) {
	usd, ok := costInUSD(ether("0.5"), "0.7345")
	require.True(t, ok)
	assert.Equal(t, "0.37", usd)

	_, ok = costInUSD(ether("1"), "n/a")
	assert.False(t, ok)
}
