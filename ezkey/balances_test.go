package ezkey

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/AlexZinkM/ezkey-wallet/ezkey/ezkeytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStrategies(t *testing.T) *BalanceReader {
	t.Helper()
	chain, err := StrategiesByName([]string{StrategyMapping, StrategyGetter, StrategyHolder})
	require.NoError(t, err)
	return NewBalanceReader(chain, nil)
}

func TestBalanceMappingShortCircuits(t *testing.T) {
	key := ezkeytest.NewKey()
	key.MappingPol = ether("50")
	key.MappingSushi = ether("60")
	key.GetterPol = ether("1")
	key.GetterSushi = ether("1")

	pol, sushi, source := allStrategies(t).Read(context.Background(), key, testUser)

	assert.Equal(t, StrategyMapping, source)
	assert.Equal(t, ether("50"), pol)
	assert.Equal(t, ether("60"), sushi)
	assert.False(t, key.Called("getInternalPolBalance"))
	assert.False(t, key.Called("getInternalSushiBalance"))
	assert.False(t, key.Called("holders"))
}

func TestBalanceFallsBackToGetter(t *testing.T) {
	key := ezkeytest.NewKey()
	key.MappingPol = ether("50") // sushi mapping missing, strategy fails as a whole
	key.GetterPol = ether("3")
	key.GetterSushi = ether("4")

	pol, sushi, source := allStrategies(t).Read(context.Background(), key, testUser)

	assert.Equal(t, StrategyGetter, source)
	assert.Equal(t, ether("3"), pol)
	assert.Equal(t, ether("4"), sushi)
	assert.False(t, key.Called("holders"))
}

func TestBalanceFallsBackToHolder(t *testing.T) {
	key := ezkeytest.NewKey()
	key.Holder = []*big.Int{big.NewInt(0), big.NewInt(1700000000), ether("7"), ether("8")}

	pol, sushi, source := allStrategies(t).Read(context.Background(), key, testUser)

	assert.Equal(t, StrategyHolder, source)
	assert.Equal(t, ether("7"), pol)
	assert.Equal(t, ether("8"), sushi)
}

func TestBalanceHolderMissingWordsAreZero(t *testing.T) {
	key := ezkeytest.NewKey()
	key.Holder = []*big.Int{big.NewInt(1), big.NewInt(1700000000)}

	pol, sushi, source := allStrategies(t).Read(context.Background(), key, testUser)

	assert.Equal(t, StrategyHolder, source)
	assert.Zero(t, pol.Sign())
	assert.Zero(t, sushi.Sign())
}

func TestBalanceDefaultsWhenAllFail(t *testing.T) {
	key := ezkeytest.NewKey()

	pol, sushi, source := allStrategies(t).Read(context.Background(), key, testUser)

	assert.Equal(t, SourceDefault, source)
	assert.Zero(t, pol.Sign())
	assert.Zero(t, sushi.Sign())
	assert.True(t, key.Called("holders"))
}

func TestBalanceConfiguredOrder(t *testing.T) {
	chain, err := StrategiesByName([]string{StrategyGetter, StrategyMapping})
	require.NoError(t, err)

	key := ezkeytest.NewKey()
	key.MappingPol = ether("1")
	key.MappingSushi = ether("1")
	key.GetterPol = ether("2")
	key.GetterSushi = ether("2")

	_, _, source := NewBalanceReader(chain, nil).Read(context.Background(), key, testUser)
	assert.Equal(t, StrategyGetter, source)
	assert.False(t, key.Called("internalPolBalances"))
}

func TestStrategiesByNameRejectsUnknown(t *testing.T) {
	_, err := StrategiesByName([]string{"mapping", "oracle"})
	assert.ErrorContains(t, err, `unknown balance strategy "oracle"`)

	_, err = StrategiesByName(nil)
	assert.Error(t, err)
}

func TestBalanceProbe(t *testing.T) {
	key := ezkeytest.NewKey()
	key.Errs["internalPolBalances"] = errors.New("execution reverted: no such function")
	key.GetterPol = ether("2.5")
	key.GetterSushi = ether("0")
	key.Holder = []*big.Int{big.NewInt(0), big.NewInt(0)}

	results := allStrategies(t).Probe(context.Background(), key, testUser)
	require.Len(t, results, 3)

	assert.Equal(t, StrategyMapping, results[0].Strategy)
	assert.Contains(t, results[0].Error, "no such function")
	assert.Equal(t, "2.5", results[1].EzPol)
	assert.Equal(t, "0.0", results[1].EzSushi)
	assert.Empty(t, results[2].Error)
	assert.Equal(t, "0.0", results[2].EzPol)
}
