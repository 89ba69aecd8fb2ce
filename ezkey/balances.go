package ezkey

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/metrics"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Strategy names accepted in BALANCE_STRATEGIES
const (
	StrategyMapping = "mapping"
	StrategyGetter  = "getter"
	StrategyHolder  = "holder"

	// SourceDefault marks balances that fell back to zero
	SourceDefault = "default"
)

// Holder record word positions: level, lastClaim, Ez-POL, Ez-SUSHI
const (
	holderLastClaimWord = 1
	holderPolWord       = 2
	holderSushiWord     = 3
)

// BalanceStrategy reads the Ez-POL and Ez-SUSHI internal balances one way
type BalanceStrategy interface {
	Name() string
	Read(ctx context.Context, key KeyReader, user ethcommon.Address) (pol, sushi *big.Int, err error)
}

type mappingStrategy struct{}

func (mappingStrategy) Name() string { return StrategyMapping }

func (mappingStrategy) Read(ctx context.Context, key KeyReader, user ethcommon.Address) (*big.Int, *big.Int, error) {
	pol, err := key.InternalPolBalances(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	sushi, err := key.InternalSushiBalances(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pol, sushi, nil
}

type getterStrategy struct{}

func (getterStrategy) Name() string { return StrategyGetter }

func (getterStrategy) Read(ctx context.Context, key KeyReader, user ethcommon.Address) (*big.Int, *big.Int, error) {
	pol, err := key.GetInternalPolBalance(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	sushi, err := key.GetInternalSushiBalance(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pol, sushi, nil
}

// holderStrategy reads the extra words of the holders record, zero when absent
type holderStrategy struct{}

func (holderStrategy) Name() string { return StrategyHolder }

func (holderStrategy) Read(ctx context.Context, key KeyReader, user ethcommon.Address) (*big.Int, *big.Int, error) {
	words, err := key.HolderWords(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return wordAt(words, holderPolWord), wordAt(words, holderSushiWord), nil
}

func wordAt(words []*big.Int, i int) *big.Int {
	if i < len(words) && words[i] != nil {
		return words[i]
	}
	return new(big.Int)
}

var strategies = map[string]BalanceStrategy{
	StrategyMapping: mappingStrategy{},
	StrategyGetter:  getterStrategy{},
	StrategyHolder:  holderStrategy{},
}

// StrategiesByName resolves the configured strategy chain in order
func StrategiesByName(names []string) ([]BalanceStrategy, error) {
	if len(names) == 0 {
		return nil, errors.New("at least one balance strategy is required")
	}
	out := make([]BalanceStrategy, 0, len(names))
	for _, name := range names {
		s, ok := strategies[name]
		if !ok {
			return nil, fmt.Errorf("unknown balance strategy %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// BalanceReader walks the strategy chain
type BalanceReader struct {
	chain []BalanceStrategy
	log   *zap.Logger
}

// NewBalanceReader creates a reader over chain
func NewBalanceReader(chain []BalanceStrategy, log *zap.Logger) *BalanceReader {
	if log == nil {
		log = zap.NewNop()
	}
	return &BalanceReader{chain: chain, log: log}
}

// Read returns the balances from the first strategy that succeeds.
// When every strategy fails both balances are zero and source is SourceDefault.
func (r *BalanceReader) Read(ctx context.Context, key KeyReader, user ethcommon.Address) (pol, sushi *big.Int, source string) {
	var errs []error
	for _, s := range r.chain {
		pol, sushi, err := s.Read(ctx, key, user)
		if err == nil {
			metrics.BalanceStrategy.WithLabelValues(s.Name(), "success").Inc()
			return pol, sushi, s.Name()
		}
		metrics.BalanceStrategy.WithLabelValues(s.Name(), "error").Inc()
		r.log.Debug("balance strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	metrics.BalanceDefaulted.Inc()
	r.log.Warn("all internal balance strategies failed, reporting zero",
		zap.String("address", user.Hex()),
		zap.Error(errors.Join(errs...)),
	)
	return new(big.Int), new(big.Int), SourceDefault
}

// Probe runs every strategy independently and reports each outcome
func (r *BalanceReader) Probe(ctx context.Context, key KeyReader, user ethcommon.Address) []model.BalanceProbeResult {
	results := make([]model.BalanceProbeResult, 0, len(r.chain))
	for _, s := range r.chain {
		res := model.BalanceProbeResult{Strategy: s.Name()}
		pol, sushi, err := s.Read(ctx, key, user)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.EzPol = common.WeiToEther(pol)
			res.EzSushi = common.WeiToEther(sushi)
		}
		results = append(results, res)
	}
	return results
}
