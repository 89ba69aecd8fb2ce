package ezkey

import (
	"context"
	"math/big"

	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/ethereum/go-ethereum"
	"go.uber.org/zap"
)

const (
	gweiDecimals = 9
	maticPlaces  = 6
	usdPlaces    = 2
)

// Estimate prices action without submitting it. Failures are reported
// with Available=false; only a wrong network or closed session is an error.
func (s *Session) Estimate(ctx context.Context, action Action, params ActionParams) (*model.GasEstimate, error) {
	if s.closed.Load() {
		return nil, errSessionClosed
	}
	c, err := s.wallet.contracts(ctx)
	if err != nil {
		return nil, err
	}

	est := &model.GasEstimate{Action: string(action)}

	snap, err := s.current(ctx, c)
	if err != nil {
		est.Error = err.Error()
		return est, nil
	}

	call, err := s.prepare(ctx, c, snap, action, params)
	if err != nil {
		est.Error = err.Error()
		return est, nil
	}

	gas, err := c.Chain.EstimateGas(ctx, ethereum.CallMsg{From: s.address, To: &call.to, Data: call.data})
	if err != nil {
		est.Error = newActionError(action, err).Error()
		return est, nil
	}
	price, err := c.Chain.SuggestGasPrice(ctx)
	if err != nil {
		est.Error = err.Error()
		return est, nil
	}

	cost := new(big.Int).Mul(new(big.Int).SetUint64(gas), price)
	est.Available = true
	est.GasUnits = gas
	est.GasPrice = common.FormatFixed(price, gweiDecimals, 2)
	est.CostMATIC = common.FormatFixed(cost, common.EtherDecimals, maticPlaces)

	if s.wallet.opts.Prices != nil {
		rate, err := s.wallet.opts.Prices.GetMATICtoUSDrate(ctx)
		if err != nil {
			s.log.Debug("MATIC price unavailable", zap.Error(err))
		} else if usd, ok := costInUSD(cost, rate); ok {
			est.CostUSD = usd
		}
	}
	return est, nil
}

// costInUSD converts a wei cost with a decimal USD rate, two decimals
func costInUSD(costWei *big.Int, rate string) (string, bool) {
	r, ok := new(big.Rat).SetString(rate)
	if !ok {
		return "", false
	}
	wei := new(big.Rat).SetFrac(costWei, new(big.Int).Exp(big.NewInt(10), big.NewInt(common.EtherDecimals), nil))
	return new(big.Rat).Mul(wei, r).FloatString(usdPlaces), true
}
