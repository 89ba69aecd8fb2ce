package ezkey

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refresh(t *testing.T, f *fixture) (*model.UserSnapshot, error) {
	t.Helper()
	s, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s.Refresh(context.Background())
}

func TestSnapshotHolder(t *testing.T) {
	f := newFixture()
	f.holder("50", "50")
	f.key.Claimable = true
	f.key.BurnReward = ether("1250")
	f.key.Holder = []*big.Int{big.NewInt(0), big.NewInt(fixedNow.Add(-time.Hour).Unix())}
	f.token.Balance = ether("150")
	f.metadata.Err = nil
	f.metadata.Meta = &model.TokenMetadata{Name: "EzKey #7", Image: "https://ipfs.io/ipfs/QmImg"}

	snap, err := refresh(t, f)
	require.NoError(t, err)

	assert.Equal(t, testUser.Hex(), snap.Address)
	assert.True(t, snap.HasKey)
	assert.True(t, snap.LevelKnown)
	assert.Equal(t, "Bronze", snap.LevelName)
	assert.Equal(t, int64(0), snap.Level)
	assert.True(t, snap.CanClaim)
	assert.Equal(t, "7", snap.TokenID)
	assert.Equal(t, "ipfs://QmKey/7.json", snap.TokenURI)
	assert.Equal(t, []string{"ipfs://QmKey/7.json"}, f.metadata.URIs)
	assert.Equal(t, "https://ipfs.io/ipfs/QmImg", snap.Image)
	assert.Equal(t, "EzKey #7", snap.Metadata.Name)

	assert.Equal(t, "50.0", snap.EzPol)
	assert.Equal(t, "50.0", snap.EzSushi)
	assert.Equal(t, StrategyMapping, snap.BalanceSource)
	assert.Equal(t, "150.0", snap.Ezoch.Amount)
	assert.Equal(t, "EZOCH", snap.Ezoch.Symbol)
	assert.Equal(t, "1250.00", snap.Reward.Estimate)
	assert.Equal(t, "1250.00", snap.Reward.Display)

	require.NotNil(t, snap.LastClaim)
	require.NotNil(t, snap.Cooldown)
	assert.Equal(t, uint64(86400), snap.Cooldown.Seconds)
	assert.Equal(t, int64(23*3600), snap.Cooldown.RemainingSeconds)
	assert.False(t, snap.Cooldown.Ready)

	assert.True(t, snap.Gates.Claim)
	assert.True(t, snap.Gates.UpgradeSilver)
	assert.False(t, snap.Gates.UpgradeGold)
	assert.True(t, snap.Gates.Burn)
	assert.True(t, snap.Gates.Transfer)
	assert.False(t, snap.Gates.Mint)
	assert.Equal(t, fixedNow, snap.UpdatedAt)
}

func TestSnapshotMetadataFailureUsesPlaceholder(t *testing.T) {
	f := newFixture()
	f.holder("1", "1")

	snap, err := refresh(t, f)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderImage, snap.Image)
	assert.Nil(t, snap.Metadata)
	assert.Equal(t, "ipfs://QmKey/7.json", snap.TokenURI)
}

func TestSnapshotWithoutKey(t *testing.T) {
	f := newFixture()
	f.token.Balance = ether("100")

	snap, err := refresh(t, f)
	require.NoError(t, err)
	assert.False(t, snap.HasKey)
	assert.Empty(t, snap.TokenID)
	assert.Empty(t, snap.Image)
	assert.False(t, f.key.Called("tokenOfOwnerByIndex"))
	assert.False(t, f.key.Called("calculateBurnReward"))
	assert.True(t, snap.Gates.Mint)

	// no strategy answers so balances default to zero
	assert.Equal(t, SourceDefault, snap.BalanceSource)
	assert.Equal(t, "0", snap.EzPol)
	assert.Equal(t, "0", snap.EzSushi)
	assert.Equal(t, "0.00", snap.Reward.Display)

	// lastClaim absent when neither source answers
	assert.Nil(t, snap.LastClaim)
	assert.Nil(t, snap.Cooldown)
}

func TestSnapshotRequiredReadFails(t *testing.T) {
	f := newFixture()
	f.key.Errs["getUserLevel"] = errors.New("rpc timeout")

	_, err := refresh(t, f)
	assert.EqualError(t, err, "failed to read level: rpc timeout")

	f = newFixture()
	f.token.Errs["balanceOf"] = errors.New("rpc timeout")
	_, err = refresh(t, f)
	assert.EqualError(t, err, "failed to read EZOCH balance: rpc timeout")
}

func TestSnapshotUnknownSymbol(t *testing.T) {
	f := newFixture()
	f.token.Errs["symbol"] = errors.New("execution reverted")

	snap, err := refresh(t, f)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", snap.Ezoch.Symbol)
}

func TestSnapshotUnknownLevel(t *testing.T) {
	f := newFixture()
	f.holder("500", "500")
	f.key.Level = big.NewInt(7)
	f.token.Balance = ether("100000")

	snap, err := refresh(t, f)
	require.NoError(t, err)
	assert.False(t, snap.LevelKnown)
	assert.Equal(t, int64(7), snap.Level)
	assert.Equal(t, "Unknown", snap.LevelName)
	assert.False(t, snap.Gates.Claim)
	assert.False(t, snap.Gates.UpgradeSilver)
	assert.False(t, snap.Gates.UpgradeGold)
	assert.True(t, snap.Gates.Burn)
}

func TestSnapshotCooldownFallsBackToGetter(t *testing.T) {
	f := newFixture()
	f.holder("1", "1")
	f.key.LastClaim = big.NewInt(fixedNow.Add(-48 * time.Hour).Unix())

	snap, err := refresh(t, f)
	require.NoError(t, err)
	require.NotNil(t, snap.Cooldown)
	assert.True(t, snap.Cooldown.Ready)
	assert.Zero(t, snap.Cooldown.RemainingSeconds)
	assert.True(t, f.key.Called("getLastClaimTime"))
}

func TestSnapshotZeroLastClaimIsAbsent(t *testing.T) {
	f := newFixture()
	f.holder("1", "1")
	f.key.Holder = []*big.Int{big.NewInt(0), big.NewInt(0)}

	snap, err := refresh(t, f)
	require.NoError(t, err)
	assert.Nil(t, snap.LastClaim)
	assert.Nil(t, snap.Cooldown)
}
