package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EzKey contract method names
const (
	MethodMintKey         = "mintKey"
	MethodClaimReward     = "claimReward"
	MethodUpgradeToSilver = "upgradeToSilver"
	MethodUpgradeToGold   = "upgradeToGold"
	MethodBurnKey         = "burnKeyForEzoch"
	MethodTransferFrom    = "transferFrom"
)

const wordSize = 32

// EzKeyClient wraps the deployed EzKey NFT contract
type EzKeyClient struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
	caller   bind.ContractCaller
}

// NewEzKeyClient binds the EzKey contract at address.
// transactor may be nil for a read-only client.
func NewEzKeyClient(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor) (*EzKeyClient, error) {
	parsed, err := abi.JSON(strings.NewReader(EzKeyABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse EzKey ABI: %w", err)
	}
	return &EzKeyClient{
		abi:      parsed,
		address:  address,
		contract: bind.NewBoundContract(address, parsed, caller, transactor, nil),
		caller:   caller,
	}, nil
}

// Address returns the contract address
func (c *EzKeyClient) Address() common.Address {
	return c.address
}

// Pack encodes calldata for method, used for gas estimation
func (c *EzKeyClient) Pack(method string, args ...any) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return data, nil
}

// BalanceOf returns the number of keys owned by owner
func (c *EzKeyClient) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "balanceOf", owner)
}

// TokenOfOwnerByIndex returns the index-th token id owned by owner
func (c *EzKeyClient) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index *big.Int) (*big.Int, error) {
	return callBig(ctx, c.contract, "tokenOfOwnerByIndex", owner, index)
}

// TokenURI returns the metadata URI of tokenID
func (c *EzKeyClient) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	return callString(ctx, c.contract, "tokenURI", tokenID)
}

// GetUserLevel returns the raw level of user
func (c *EzKeyClient) GetUserLevel(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "getUserLevel", user)
}

// CanUserClaim reports the contract's claim eligibility for user
func (c *EzKeyClient) CanUserClaim(ctx context.Context, user common.Address) (bool, error) {
	return callBool(ctx, c.contract, "canUserClaim", user)
}

// GetClaimCooldown returns the claim cooldown in seconds
func (c *EzKeyClient) GetClaimCooldown(ctx context.Context) (*big.Int, error) {
	return callBig(ctx, c.contract, "getClaimCooldown")
}

// GetLastClaimTime returns the unix time of the last claim of user
func (c *EzKeyClient) GetLastClaimTime(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "getLastClaimTime", user)
}

// CalculateBurnReward returns the contract's burn reward for user in wei
func (c *EzKeyClient) CalculateBurnReward(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "calculateBurnReward", user)
}

// InternalPolBalances reads the public internalPolBalances mapping
func (c *EzKeyClient) InternalPolBalances(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "internalPolBalances", user)
}

// InternalSushiBalances reads the public internalSushiBalances mapping
func (c *EzKeyClient) InternalSushiBalances(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "internalSushiBalances", user)
}

// GetInternalPolBalance calls the Ez-POL accessor
func (c *EzKeyClient) GetInternalPolBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "getInternalPolBalance", user)
}

// GetInternalSushiBalance calls the Ez-SUSHI accessor
func (c *EzKeyClient) GetInternalSushiBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	return callBig(ctx, c.contract, "getInternalSushiBalance", user)
}

// HolderWords calls holders(user) and returns the raw 32-byte return words.
// Deployments differ in how many fields the record carries, so the result
// is not decoded against the ABI.
func (c *EzKeyClient) HolderWords(ctx context.Context, user common.Address) ([]*big.Int, error) {
	data, err := c.Pack("holders", user)
	if err != nil {
		return nil, err
	}
	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call holders: %w", err)
	}
	if len(out) < wordSize {
		return nil, errors.New("failed to call holders: empty record")
	}

	words := make([]*big.Int, 0, len(out)/wordSize)
	for i := 0; i+wordSize <= len(out); i += wordSize {
		words = append(words, new(big.Int).SetBytes(out[i:i+wordSize]))
	}
	return words, nil
}

// MintKey mints a bronze key to the sender
func (c *EzKeyClient) MintKey(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodMintKey)
}

// ClaimReward claims the periodic reward
func (c *EzKeyClient) ClaimReward(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodClaimReward)
}

// UpgradeToSilver upgrades the sender's key to silver
func (c *EzKeyClient) UpgradeToSilver(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodUpgradeToSilver)
}

// UpgradeToGold upgrades the sender's key to gold
func (c *EzKeyClient) UpgradeToGold(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodUpgradeToGold)
}

// BurnKeyForEzoch burns the sender's key for EZOCH
func (c *EzKeyClient) BurnKeyForEzoch(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodBurnKey)
}

// TransferFrom moves tokenID from one address to another
func (c *EzKeyClient) TransferFrom(opts *bind.TransactOpts, from, to common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return c.contract.Transact(opts, MethodTransferFrom, from, to, tokenID)
}
