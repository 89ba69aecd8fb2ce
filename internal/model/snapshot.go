package model

import "time"

// UserSnapshot is the derived view of one address against the EzKey and EZOCH contracts.
// It is rebuilt wholesale on every refresh.
type UserSnapshot struct {
	Address       string         `json:"address"`
	Level         int64          `json:"level"`
	LevelName     string         `json:"levelName"`
	LevelKnown    bool           `json:"levelKnown"`
	HasKey        bool           `json:"hasKey"`
	CanClaim      bool           `json:"canClaim"`
	TokenID       string         `json:"tokenId,omitempty"`
	TokenURI      string         `json:"tokenUri,omitempty"`
	Metadata      *TokenMetadata `json:"metadata,omitempty"`
	Image         string         `json:"image,omitempty"`
	LastClaim     *time.Time     `json:"lastClaim,omitempty"`
	Cooldown      *Cooldown      `json:"cooldown,omitempty"`
	EzPol         string         `json:"ezPol"`
	EzSushi       string         `json:"ezSushi"`
	BalanceSource string         `json:"balanceSource"`
	Ezoch         TokenBalance   `json:"ezoch"`
	Reward        Reward         `json:"reward"`
	Gates         Gates          `json:"gates"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// TokenMetadata is the subset of the ERC-721 metadata document that is rendered
type TokenMetadata struct {
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	Image       string              `json:"image,omitempty"`
	Attributes  []MetadataAttribute `json:"attributes,omitempty"`
}

// MetadataAttribute is one trait of the metadata document
type MetadataAttribute struct {
	TraitType string `json:"traitType"`
	Value     string `json:"value"`
}

// Cooldown describes when the next claim becomes possible
type Cooldown struct {
	Seconds          uint64    `json:"seconds"`
	NextClaimAt      time.Time `json:"nextClaimAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	Ready            bool      `json:"ready"`
}

// Reward holds the burn reward estimate.
// Display is Contract when the contract value could be read, Estimate otherwise.
type Reward struct {
	Estimate string `json:"estimate"`
	Contract string `json:"contract,omitempty"`
	Display  string `json:"display"`
}

// Gates tells which actions are enabled for the snapshot. Display only.
type Gates struct {
	Mint             bool   `json:"mint"`
	Claim            bool   `json:"claim"`
	ClaimRequirement string `json:"claimRequirement,omitempty"`
	UpgradeSilver    bool   `json:"upgradeSilver"`
	UpgradeGold      bool   `json:"upgradeGold"`
	Burn             bool   `json:"burn"`
	Transfer         bool   `json:"transfer"`
}
