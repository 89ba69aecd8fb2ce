package ezkey

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/metrics"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const (
	// PlaceholderImage is shown when the key metadata cannot be resolved
	PlaceholderImage = "/placeholder.svg"

	unknownSymbol = "UNKNOWN"
)

// MetadataFetcher resolves a token URI to its metadata document
type MetadataFetcher interface {
	Fetch(ctx context.Context, uri string) (*model.TokenMetadata, error)
}

// ViewBuilder aggregates the contract reads into a UserSnapshot
type ViewBuilder struct {
	balances *BalanceReader
	metadata MetadataFetcher
	now      func() time.Time
	log      *zap.Logger
}

// NewViewBuilder creates a builder. metadata may be nil to skip metadata fetches.
func NewViewBuilder(balances *BalanceReader, metadata MetadataFetcher, now func() time.Time, log *zap.Logger) *ViewBuilder {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewBuilder{balances: balances, metadata: metadata, now: now, log: log}
}

// Build reads everything about user and returns a fresh snapshot.
// Ownership, level, claim eligibility and the EZOCH balance are required;
// everything else degrades to absent.
func (b *ViewBuilder) Build(ctx context.Context, c *Contracts, user ethcommon.Address) (*model.UserSnapshot, error) {
	start := time.Now()
	snap, err := b.build(ctx, c, user)
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.SnapshotDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return snap, err
}

func (b *ViewBuilder) build(ctx context.Context, c *Contracts, user ethcommon.Address) (*model.UserSnapshot, error) {
	owned, err := c.Key.BalanceOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read key ownership: %w", err)
	}
	rawLevel, err := c.Key.GetUserLevel(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read level: %w", err)
	}
	canClaim, err := c.Key.CanUserClaim(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read claim eligibility: %w", err)
	}
	ezoch, err := c.Token.BalanceOf(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read EZOCH balance: %w", err)
	}
	decimals, err := c.Token.Decimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read EZOCH decimals: %w", err)
	}
	symbol, err := c.Token.Symbol(ctx)
	if err != nil {
		b.log.Debug("EZOCH symbol not readable", zap.Error(err))
		symbol = unknownSymbol
	}

	pol, sushi, source := b.balances.Read(ctx, c.Key, user)

	level := ParseLevel(rawLevel)
	snap := &model.UserSnapshot{
		Address:       user.Hex(),
		Level:         int64(LevelUnknown),
		LevelName:     level.String(),
		LevelKnown:    level.Known(),
		HasKey:        owned.Sign() > 0,
		CanClaim:      canClaim,
		EzPol:         common.WeiToEther(pol),
		EzSushi:       common.WeiToEther(sushi),
		BalanceSource: source,
		Ezoch: model.TokenBalance{
			Amount:   common.FormatUnits(ezoch, int(decimals)),
			Symbol:   symbol,
			Decimals: decimals,
		},
		UpdatedAt: b.now().UTC(),
	}
	if rawLevel.IsInt64() {
		snap.Level = rawLevel.Int64()
	}
	if source == SourceDefault {
		snap.EzPol, snap.EzSushi = "0", "0"
	}

	var contractReward *big.Int
	if snap.HasKey {
		b.resolveToken(ctx, c.Key, user, snap)
		if reward, err := c.Key.CalculateBurnReward(ctx, user); err == nil {
			contractReward = reward
		} else {
			b.log.Debug("contract burn reward not readable", zap.Error(err))
		}
	}
	snap.Reward = BuildReward(pol, sushi, contractReward)

	b.resolveCooldown(ctx, c.Key, user, snap)

	snap.Gates = ComputeGates(GateInput{
		Level:         level,
		HasKey:        snap.HasKey,
		Ezoch:         ezoch,
		EzochDecimals: decimals,
		EzPol:         pol,
		EzSushi:       sushi,
	})
	return snap, nil
}

// resolveToken fills token id, URI, metadata and image. Failures leave the fields absent.
func (b *ViewBuilder) resolveToken(ctx context.Context, key KeyReader, user ethcommon.Address, snap *model.UserSnapshot) {
	snap.Image = PlaceholderImage

	tokenID, err := key.TokenOfOwnerByIndex(ctx, user, new(big.Int))
	if err != nil {
		b.log.Debug("token id not readable", zap.Error(err))
		return
	}
	snap.TokenID = tokenID.String()

	uri, err := key.TokenURI(ctx, tokenID)
	if err != nil {
		b.log.Debug("token URI not readable", zap.String("tokenId", snap.TokenID), zap.Error(err))
		return
	}
	snap.TokenURI = uri

	if b.metadata == nil {
		return
	}
	meta, err := b.metadata.Fetch(ctx, uri)
	if err != nil {
		b.log.Info("token metadata unavailable, using placeholder", zap.String("uri", uri), zap.Error(err))
		return
	}
	snap.Metadata = meta
	if meta.Image != "" {
		snap.Image = meta.Image
	}
}

// resolveCooldown fills last claim and next claim time when both reads succeed
func (b *ViewBuilder) resolveCooldown(ctx context.Context, key KeyReader, user ethcommon.Address, snap *model.UserSnapshot) {
	lastClaim := b.lastClaim(ctx, key, user)
	if lastClaim == nil || lastClaim.Sign() == 0 || !lastClaim.IsInt64() {
		return
	}
	last := time.Unix(lastClaim.Int64(), 0).UTC()
	snap.LastClaim = &last

	cooldown, err := key.GetClaimCooldown(ctx)
	if err != nil || !cooldown.IsUint64() {
		b.log.Debug("claim cooldown not readable", zap.Error(err))
		return
	}

	seconds := cooldown.Uint64()
	next := last.Add(time.Duration(seconds) * time.Second)
	now := b.now()
	remaining := int64(0)
	if now.Before(next) {
		remaining = int64(next.Sub(now).Seconds())
	}
	snap.Cooldown = &model.Cooldown{
		Seconds:          seconds,
		NextClaimAt:      next,
		RemainingSeconds: remaining,
		Ready:            !now.Before(next),
	}
}

// lastClaim prefers the holders record and falls back to getLastClaimTime
func (b *ViewBuilder) lastClaim(ctx context.Context, key KeyReader, user ethcommon.Address) *big.Int {
	if words, err := key.HolderWords(ctx, user); err == nil && len(words) > holderLastClaimWord {
		return words[holderLastClaimWord]
	}
	v, err := key.GetLastClaimTime(ctx, user)
	if err != nil {
		b.log.Debug("last claim not readable", zap.Error(err))
		return nil
	}
	return v
}
