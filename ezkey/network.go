package ezkey

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"
)

// NetworkGuard compares the wallet's chain with the required network
type NetworkGuard struct {
	provider WalletProvider
	required client.Network
}

// NewNetworkGuard creates a guard for the required network
func NewNetworkGuard(provider WalletProvider, required client.Network) *NetworkGuard {
	return &NetworkGuard{provider: provider, required: required}
}

// Required returns the required network definition
func (g *NetworkGuard) Required() client.Network {
	return g.required
}

// Check reports the active chain and whether it is the required one
func (g *NetworkGuard) Check(ctx context.Context) (model.NetworkStatus, error) {
	chainID, err := g.provider.ChainID(ctx)
	if err != nil {
		return model.NetworkStatus{}, fmt.Errorf("failed to get chain id: %w", err)
	}
	correct := chainID == g.required.ChainID
	return model.NetworkStatus{
		ChainID:         chainID,
		Name:            client.NetworkName(chainID),
		Correct:         correct,
		RequiredChainID: g.required.ChainID,
		RequiredName:    g.required.Name,
		SwitchAvailable: !correct,
	}, nil
}

// Ensure returns a WrongNetworkError unless the wallet is on the required chain
func (g *NetworkGuard) Ensure(ctx context.Context) error {
	status, err := g.Check(ctx)
	if err != nil {
		return err
	}
	if !status.Correct {
		return &WrongNetworkError{Status: status}
	}
	return nil
}

// Switch asks the wallet to switch to the required network, adding it first
// when the wallet does not know the chain. No retry.
func (g *NetworkGuard) Switch(ctx context.Context) error {
	_, err := g.provider.Request(ctx, client.MethodSwitchChain, client.SwitchChainParams(g.required.ChainID))
	if err == nil {
		return nil
	}

	if client.IsProviderError(err, client.CodeUnknownChain) {
		if _, addErr := g.provider.Request(ctx, client.MethodAddChain, client.AddChainParams(g.required)); addErr != nil {
			return fmt.Errorf("failed to add network %s: %w", g.required.Name, addErr)
		}
		return nil
	}
	return fmt.Errorf("failed to switch network: %w", err)
}
