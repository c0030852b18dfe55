package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCheckPaymentFits(t *testing.T) {
	// 80 already paid on a 100 fee: 20.01 is over-payment, no partial
	// acceptance of the excess.
	covers, err := checkPaymentFits(d("100.00"), d("80.00"), d("20.01"))
	assert.ErrorIs(t, err, ErrFeeOverpaid)
	assert.False(t, covers)

	covers, err = checkPaymentFits(d("100.00"), d("80.00"), d("20.00"))
	assert.NoError(t, err)
	assert.True(t, covers, "an exact-boundary payment is accepted and settles the fee")

	covers, err = checkPaymentFits(d("100.00"), d("0"), d("60.00"))
	assert.NoError(t, err)
	assert.False(t, covers)

	covers, err = checkPaymentFits(d("100.00"), d("100.00"), d("0.01"))
	assert.ErrorIs(t, err, ErrFeeOverpaid)
	assert.False(t, covers)
}

func TestBuildFeeFilterClauseDefaults(t *testing.T) {
	clause, args := buildFeeFilterClause("condo-1", nil)
	assert.Equal(t, "WHERE f.condominium_id = $1 AND f.is_historical = false", clause)
	assert.Equal(t, []interface{}{"condo-1"}, args)
}

func TestBuildFeeFilterClausePeriodExcludesHistorical(t *testing.T) {
	clause, args := buildFeeFilterClause("condo-1", &FeeFilters{
		Year:  intPtr(2024),
		Month: intPtr(3),
	})
	assert.Equal(t,
		"WHERE f.condominium_id = $1 AND f.is_historical = false AND f.period_year = $2 AND f.period_month = $3",
		clause)
	assert.Equal(t, []interface{}{"condo-1", 2024, 3}, args)
}

func TestBuildFeeFilterClauseHistoricalIgnoresPeriod(t *testing.T) {
	// A historical 2019 debt must still show up when the caller asks
	// for 2024 with historical debts included.
	clause, args := buildFeeFilterClause("condo-1", &FeeFilters{
		Year:              intPtr(2024),
		IncludeHistorical: true,
	})
	assert.Equal(t,
		"WHERE f.condominium_id = $1 AND (f.is_historical = true OR (f.period_year = $2))",
		clause)
	assert.Equal(t, []interface{}{"condo-1", 2024}, args)
}

func TestBuildFeeFilterClauseHistoricalAlone(t *testing.T) {
	clause, args := buildFeeFilterClause("condo-1", &FeeFilters{IncludeHistorical: true})
	assert.Equal(t, "WHERE f.condominium_id = $1", clause)
	assert.Equal(t, []interface{}{"condo-1"}, args)
}

func TestBuildFeeFilterClauseFractionAndType(t *testing.T) {
	clause, args := buildFeeFilterClause("condo-1", &FeeFilters{
		FractionID: "fraction-9",
		FeeType:    "quota",
	})
	assert.Equal(t,
		"WHERE f.condominium_id = $1 AND f.fraction_id = $2 AND f.fee_type = $3 AND f.is_historical = false",
		clause)
	assert.Equal(t, []interface{}{"condo-1", "fraction-9", "quota"}, args)
}
