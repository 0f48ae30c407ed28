package money_test

import (
	"testing"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/acctsys/accounting_backend/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	m, err := money.FromDecimal(decimal.RequireFromString("120.50"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(12050), m)

	m, err = money.FromDecimal(decimal.RequireFromString("0"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(0), m)

	m, err = money.FromDecimal(decimal.RequireFromString("-3.07"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(-307), m)

	// Whole numbers without decimals.
	m, err = money.FromDecimal(decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100000), m)
}

func TestFromDecimal_RejectsSubMinorPrecision(t *testing.T) {
	_, err := money.FromDecimal(decimal.RequireFromString("100.005"))
	assert.Error(t, err)

	_, err = money.FromDecimal(decimal.RequireFromString("0.001"))
	assert.Error(t, err)
}

func TestFromDecimal_RejectsOverflow(t *testing.T) {
	huge := decimal.New(1, 30)
	_, err := money.FromDecimal(huge)
	assert.Error(t, err)
}

func TestFromString(t *testing.T) {
	m, err := money.FromString("42.99")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(4299), m)

	_, err = money.FromString("not-a-number")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	assert.Equal(t, "120.50", money.Format(domain.Money(12050)))
	assert.Equal(t, "0.00", money.Format(domain.Money(0)))
	assert.Equal(t, "-3.07", money.Format(domain.Money(-307)))

	back, err := money.FromString(money.Format(domain.Money(999999)))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(999999), back)
}
