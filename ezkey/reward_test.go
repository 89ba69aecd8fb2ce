package ezkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBurnReward(t *testing.T) {
	tests := []struct {
		name       string
		pol, sushi string
		want       string
	}{
		{"example", "50", "50", "1250.00"},
		{"zero", "0", "0", "0.00"},
		{"pol only", "1.5", "0", "7.50"},
		{"sushi only", "0", "0.01", "0.20"},
		{"rounds half up", "0.001", "0", "0.01"},
		{"rounds down", "0.0009", "0", "0.00"},
		{"large", "1000000", "250000", "10000000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReward(EstimateBurnReward(ether(tt.pol), ether(tt.sushi))))
		})
	}
}

func TestBuildRewardPrefersContract(t *testing.T) {
	r := BuildReward(ether("50"), ether("50"), ether("1249.999"))
	assert.Equal(t, "1250.00", r.Estimate)
	assert.Equal(t, "1250.00", r.Contract)
	assert.Equal(t, r.Contract, r.Display)

	r = BuildReward(ether("10"), ether("0"), ether("42"))
	assert.Equal(t, "50.00", r.Estimate)
	assert.Equal(t, "42.00", r.Display)

	r = BuildReward(ether("10"), ether("1"), nil)
	assert.Empty(t, r.Contract)
	assert.Equal(t, "70.00", r.Display)
}
