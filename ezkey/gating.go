package ezkey

import (
	"fmt"
	"math/big"

	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"
)

// Level is the tier of an EzKey holder
type Level int

const (
	LevelUnknown Level = -1
	LevelBronze  Level = 0
	LevelSilver  Level = 1
	LevelGold    Level = 2
)

// ParseLevel maps the raw contract level, anything outside 0..2 is unknown
func ParseLevel(raw *big.Int) Level {
	if raw == nil || !raw.IsInt64() {
		return LevelUnknown
	}
	switch l := Level(raw.Int64()); l {
	case LevelBronze, LevelSilver, LevelGold:
		return l
	default:
		return LevelUnknown
	}
}

func (l Level) String() string {
	switch l {
	case LevelBronze:
		return "Bronze"
	case LevelSilver:
		return "Silver"
	case LevelGold:
		return "Gold"
	default:
		return "Unknown"
	}
}

// Known reports whether l is one of the three tiers
func (l Level) Known() bool {
	return l != LevelUnknown
}

// EZOCH needed to claim at each level, in whole tokens
var claimThresholds = map[Level]int64{
	LevelBronze: 100,
	LevelSilver: 5000,
	LevelGold:   15000,
}

const (
	silverUpgradeAmount = 50
	goldUpgradeAmount   = 150
	mintAmount          = 100
)

// ClaimThreshold returns the EZOCH amount in base units needed to claim at level
func ClaimThreshold(level Level, decimals uint8) (*big.Int, bool) {
	whole, ok := claimThresholds[level]
	if !ok {
		return nil, false
	}
	return common.Units(whole, int(decimals)), true
}

// GateInput is what the gates are computed from
type GateInput struct {
	Level         Level
	HasKey        bool
	Ezoch         *big.Int
	EzochDecimals uint8
	EzPol         *big.Int // wei
	EzSushi       *big.Int // wei
}

// ComputeGates derives which actions are enabled. Comparisons are exact on base units.
func ComputeGates(in GateInput) model.Gates {
	var g model.Gates

	ezoch := orZero(in.Ezoch)
	pol := orZero(in.EzPol)
	sushi := orZero(in.EzSushi)

	if threshold, ok := ClaimThreshold(in.Level, in.EzochDecimals); ok {
		g.Claim = in.HasKey && ezoch.Cmp(threshold) >= 0
		g.ClaimRequirement = fmt.Sprintf("%d EZOCH", claimThresholds[in.Level])
	}

	// Silver is offered to Bronze holders only, Gold to Silver holders only
	silver := common.Units(silverUpgradeAmount, common.EtherDecimals)
	gold := common.Units(goldUpgradeAmount, common.EtherDecimals)
	g.UpgradeSilver = in.HasKey && in.Level == LevelBronze && pol.Cmp(silver) >= 0 && sushi.Cmp(silver) >= 0
	g.UpgradeGold = in.HasKey && in.Level == LevelSilver && pol.Cmp(gold) >= 0 && sushi.Cmp(gold) >= 0

	g.Mint = !in.HasKey && ezoch.Cmp(common.Units(mintAmount, int(in.EzochDecimals))) >= 0
	g.Burn = in.HasKey && new(big.Int).Add(pol, sushi).Sign() > 0
	g.Transfer = in.HasKey

	return g
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
