package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/config"
	"github.com/AlexZinkM/ezkey-wallet/internal/crypto"
	"github.com/AlexZinkM/ezkey-wallet/internal/logger"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// app is the wired wallet shared by the commands
type app struct {
	provider *client.LocalProvider
	wallet   *ezkey.Wallet
}

// confirmApprover asks on the terminal before the wallet signs or connects
func confirmApprover() client.Approver {
	if globalFlags.Yes {
		return client.AutoApprove
	}
	return client.ApproverFunc(func(ctx context.Context, request string) (bool, error) {
		return pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show(fmt.Sprintf("Wallet request: %s. Approve?", request))
	})
}

// unlockKey prompts for the password and decrypts the keystore.
// It returns nil when no keystore exists yet.
func unlockKey() (*ecdsa.PrivateKey, error) {
	path := config.GetWalletFilePath()
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		log.Warn("no keystore found, wallet starts locked", zap.String("path", path))
		return nil, nil
	}

	if address, err := crypto.ReadWalletAddress(path); err == nil {
		pterm.Info.Printfln("Keystore %s (%s)", path, address)
	}

	password, err := config.GetWalletPasswordBytes()
	if err != nil {
		if err := config.PromptForPassword(); err != nil {
			return nil, err
		}
		if password, err = config.GetWalletPasswordBytes(); err != nil {
			return nil, err
		}
	}
	defer clear(password)

	return ezkey.LoadKey(path, password)
}

// newApp dials the wallet network and wires the EzKey contracts
func newApp(ctx context.Context, key *ecdsa.PrivateKey, approver client.Approver) (*app, error) {
	cfg := config.Get()

	networks := client.NewNetworkRegistry(client.PolygonNetwork(cfg.RPCURL))
	if cfg.NetworksFile != "" {
		if err := networks.LoadFile(cfg.NetworksFile); err != nil {
			return nil, err
		}
	}
	required := requiredNetwork(cfg, networks)

	provider, err := client.NewLocalProvider(ctx, client.LocalProviderOptions{
		Networks: networks,
		RPCURL:   config.GetWalletRPCURL(),
		Key:      key,
		Approver: approver,
		Logger:   logger.Module(log, "provider"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start wallet provider: %w", err)
	}

	strategies, err := ezkey.StrategiesByName(cfg.BalanceStrategies)
	if err != nil {
		provider.Close()
		return nil, err
	}

	if !ethcommon.IsHexAddress(cfg.EzKeyContract) || !ethcommon.IsHexAddress(cfg.EzochContract) {
		provider.Close()
		return nil, fmt.Errorf("invalid contract address in EZKEY_CONTRACT or EZOCH_CONTRACT")
	}
	factory := ezkey.NewContractsFactory(ezkey.Addresses{
		EzKey: ethcommon.HexToAddress(cfg.EzKeyContract),
		Ezoch: ethcommon.HexToAddress(cfg.EzochContract),
	})

	wallet := ezkey.NewWallet(provider, factory, ezkey.Options{
		Required:   required,
		GasLimit:   cfg.GasLimit,
		Strategies: strategies,
		Metadata:   client.NewMetadataClient(cfg.IPFSGateway, cfg.MetadataTimeout),
		Prices:     client.NewCoinGeckoClient(""),
		Logger:     logger.Module(log, "ezkey"),
	})

	return &app{provider: provider, wallet: wallet}, nil
}

// requiredNetwork is Polygon unless REQUIRED_CHAIN_ID names another chain,
// which is then taken from the networks file when listed there
func requiredNetwork(cfg *config.Config, networks *client.NetworkRegistry) client.Network {
	polygon := client.PolygonNetwork(cfg.RPCURL)
	if cfg.RequiredChainID == polygon.ChainID {
		return polygon
	}
	if n, ok := networks.Get(cfg.RequiredChainID); ok {
		return n
	}
	return client.Network{
		ChainID:        cfg.RequiredChainID,
		Name:           client.NetworkName(cfg.RequiredChainID),
		RPCURLs:        []string{cfg.RPCURL},
		NativeCurrency: polygon.NativeCurrency,
	}
}

// openApp unlocks the keystore and wires the wallet for a terminal command
func openApp(ctx context.Context) (*app, error) {
	key, err := unlockKey()
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("no keystore at %s: run ezkey generate first", config.GetWalletFilePath())
	}
	return newApp(ctx, key, confirmApprover())
}

func (a *app) Close() {
	a.provider.Close()
}
