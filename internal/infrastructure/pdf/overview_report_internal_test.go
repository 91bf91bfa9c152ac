package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", money(decimal.Zero))
	assert.Equal(t, "$12,345.60", money(decimal.RequireFromString("12345.6")))
	assert.Equal(t, "-$1,000,000.00", money(decimal.NewFromInt(-1000000)))
	assert.Equal(t, "$999.99", money(decimal.RequireFromString("999.994")))
}

func TestDelta(t *testing.T) {
	up := decimal.NewFromInt(150)
	down := decimal.RequireFromString("-2.5")
	assert.Equal(t, "+$150.00 vs prior 30d", delta(&up, money))
	assert.Equal(t, "-2.5% vs prior 30d", delta(&down, pct))
	assert.Equal(t, "no prior data", delta(nil, pct))
}
