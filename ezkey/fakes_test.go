package ezkey

import (
	"errors"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/ezkey/ezkeytest"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	testUser  = ezkeytest.User
	testOther = ezkeytest.Other
	tokenAddr = ezkeytest.TokenAddress

	ether = ezkeytest.Ether
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	key      *ezkeytest.Key
	token    *ezkeytest.Token
	chain    *ezkeytest.Chain
	provider *ezkeytest.Provider
	metadata *ezkeytest.Metadata
	wallet   *Wallet
}

func newFixture(strategyNames ...string) *fixture {
	if len(strategyNames) == 0 {
		strategyNames = []string{StrategyMapping, StrategyGetter, StrategyHolder}
	}
	chain, err := StrategiesByName(strategyNames)
	if err != nil {
		panic(err)
	}

	f := &fixture{
		key:      ezkeytest.NewKey(),
		token:    ezkeytest.NewToken(),
		chain:    ezkeytest.NewChain(),
		provider: ezkeytest.NewProvider(client.ChainIDPolygon),
		metadata: &ezkeytest.Metadata{Err: errors.New("offline")},
	}
	factory := func(client.Backend) (*Contracts, error) {
		return &Contracts{
			Key:   f.key,
			Token: f.token,
			Chain: f.chain,
			NewToken: func(address ethcommon.Address) (TokenContract, error) {
				return f.token, nil
			},
		}, nil
	}
	f.wallet = NewWallet(f.provider, factory, Options{
		Required:   client.PolygonNetwork("https://polygon-rpc.com/"),
		GasLimit:   300000,
		Strategies: chain,
		Metadata:   f.metadata,
		Prices:     ezkeytest.Prices{Rate: "0.50"},
		Now:        func() time.Time { return fixedNow },
	})
	return f
}

// holder gives the account a bronze key with the given mapping balances
func (f *fixture) holder(pol, sushi string) {
	f.key.GiveKey(pol, sushi)
}
