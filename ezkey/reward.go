package ezkey

import (
	"math/big"

	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"
)

// Burn reward rates, EZOCH per internal token
const (
	polRewardRate   = 5
	sushiRewardRate = 20
	rewardPlaces    = 2
)

// EstimateBurnReward computes ezPol*5 + ezSushi*20 in wei
func EstimateBurnReward(ezPol, ezSushi *big.Int) *big.Int {
	reward := new(big.Int).Mul(orZero(ezPol), big.NewInt(polRewardRate))
	return reward.Add(reward, new(big.Int).Mul(orZero(ezSushi), big.NewInt(sushiRewardRate)))
}

// FormatReward renders a wei amount with two decimals, rounding half up
func FormatReward(wei *big.Int) string {
	return common.FormatFixed(wei, common.EtherDecimals, rewardPlaces)
}

// BuildReward combines the local estimate with the contract value when it was read
func BuildReward(ezPol, ezSushi, contract *big.Int) model.Reward {
	r := model.Reward{Estimate: FormatReward(EstimateBurnReward(ezPol, ezSushi))}
	r.Display = r.Estimate
	if contract != nil {
		r.Contract = FormatReward(contract)
		r.Display = r.Contract
	}
	return r
}
