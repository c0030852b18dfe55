package services

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

// SplitByPermillage allocates a period total across permillage shares.
// Each share is rounded down to cents and the leftover cents go to the
// largest fractional remainders, so the parts always sum exactly to
// the rounded total. Shares are normalized by the actual permillage
// sum, which tolerates registries that do not add up to exactly 1000.
func SplitByPermillage(total decimal.Decimal, permillages []int64) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(permillages))
	if len(permillages) == 0 {
		return shares
	}

	var sum int64
	for _, p := range permillages {
		sum += p
	}
	if sum <= 0 {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		return shares
	}

	total = total.Round(2)
	sumDec := decimal.NewFromInt(sum)
	remainders := make([]decimal.Decimal, len(permillages))
	allocated := decimal.Zero
	for i, p := range permillages {
		exact := total.Mul(decimal.NewFromInt(p)).Div(sumDec)
		floored := exact.RoundDown(2)
		shares[i] = floored
		remainders[i] = exact.Sub(floored)
		allocated = allocated.Add(floored)
	}

	cent := decimal.New(1, -2)
	leftover := total.Sub(allocated)
	for leftover.IsPositive() {
		best := 0
		for i := 1; i < len(remainders); i++ {
			if remainders[i].GreaterThan(remainders[best]) {
				best = i
			}
		}
		shares[best] = shares[best].Add(cent)
		remainders[best] = decimal.Zero
		leftover = leftover.Sub(cent)
	}
	return shares
}

// GenerateMonthlyFees creates one ordinary fee per active fraction for
// the given billing period, splitting the monthly budget by permillage.
// Fractions already billed for the period are skipped, so the call is
// safe to repeat.
func GenerateMonthlyFees(
	db *sql.DB,
	log zerolog.Logger,
	condominiumID string,
	year, month int,
	monthlyBudget decimal.Decimal,
	dueDate time.Time,
) (int, error) {
	if month < 1 || month > 12 {
		return 0, &database.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if !monthlyBudget.IsPositive() {
		return 0, &database.ValidationError{Field: "budget", Message: "must be greater than zero"}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	fractions, err := database.ListActiveFractions(tx, condominiumID)
	if err != nil {
		return 0, err
	}
	if len(fractions) == 0 {
		return 0, nil
	}

	permillages := make([]int64, len(fractions))
	for i, fraction := range fractions {
		permillages[i] = fraction.Permillage
	}
	shares := SplitByPermillage(monthlyBudget, permillages)

	created := 0
	for i, fraction := range fractions {
		var exists bool
		err := tx.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM fees
				WHERE fraction_id = $1 AND period_type = 'monthly'
				AND period_year = $2 AND period_month = $3
				AND fee_type = 'ordinary' AND is_historical = false
			)`, fraction.ID, year, month,
		).Scan(&exists)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}
		if !shares[i].IsPositive() {
			log.Warn().Str("fraction_id", fraction.ID).Msg("fraction share rounds to zero, skipping")
			continue
		}

		m := month
		fee := &models.Fee{
			CondominiumID: condominiumID,
			FractionID:    fraction.ID,
			PeriodType:    models.PeriodMonthly,
			PeriodYear:    year,
			PeriodMonth:   &m,
			FeeType:       models.FeeOrdinary,
			Amount:        shares[i],
			BaseAmount:    shares[i],
			DueDate:       dueDate,
		}
		if err := database.CreateFee(tx, fee); err != nil {
			return 0, err
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().
		Str("condominium_id", condominiumID).
		Int("year", year).Int("month", month).
		Int("created", created).
		Msg("monthly fee generation completed")
	return created, nil
}
