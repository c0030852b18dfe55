package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

const feeColumns = `id, condominium_id, fraction_id, period_type, period_year, period_month,
	fee_type, amount, base_amount, due_date, status, is_historical, reference, notes,
	created_at, updated_at`

func scanFee(scanner interface{ Scan(...interface{}) error }) (*models.Fee, error) {
	fee := &models.Fee{}
	var periodMonth sql.NullInt64
	var reference, notes sql.NullString

	err := scanner.Scan(
		&fee.ID, &fee.CondominiumID, &fee.FractionID, &fee.PeriodType, &fee.PeriodYear, &periodMonth,
		&fee.FeeType, &fee.Amount, &fee.BaseAmount, &fee.DueDate, &fee.Status, &fee.IsHistorical,
		&reference, &notes, &fee.CreatedAt, &fee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if periodMonth.Valid {
		m := int(periodMonth.Int64)
		fee.PeriodMonth = &m
	}
	if reference.Valid {
		fee.Reference = &reference.String
	}
	if notes.Valid {
		fee.Notes = &notes.String
	}
	return fee, nil
}

// CreateFee registers a charge against a fraction.
func CreateFee(db DBTX, fee *models.Fee) error {
	if !fee.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if fee.PeriodType == models.PeriodMonthly && fee.PeriodMonth == nil {
		return invalid("period_month", "required for monthly fees")
	}
	if fee.DueDate.IsZero() {
		return invalid("due_date", "must be set")
	}

	fraction, err := GetFractionByID(db, fee.FractionID)
	if err != nil {
		return err
	}
	if fraction.CondominiumID != fee.CondominiumID {
		return ErrCondominiumMismatch
	}

	if fee.FeeType == "" {
		fee.FeeType = models.FeeOrdinary
	}
	query := `INSERT INTO fees (condominium_id, fraction_id, period_type, period_year, period_month,
			  fee_type, amount, base_amount, due_date, status, is_historical, reference, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', $10, $11, $12)
			  RETURNING id, status, created_at, updated_at`
	err = db.QueryRow(query,
		fee.CondominiumID, fee.FractionID, string(fee.PeriodType), fee.PeriodYear, fee.PeriodMonth,
		string(fee.FeeType), fee.Amount, fee.BaseAmount, fee.DueDate, fee.IsHistorical,
		fee.Reference, fee.Notes,
	).Scan(&fee.ID, &fee.Status, &fee.CreatedAt, &fee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fee: %v", err)
	}
	return nil
}

// GetFeeByID fetches a single fee.
func GetFeeByID(db DBTX, id string) (*models.Fee, error) {
	fee, err := scanFee(db.QueryRow(`SELECT `+feeColumns+` FROM fees WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fee, nil
}

func lockFee(tx DBTX, id string) (*models.Fee, error) {
	fee, err := scanFee(tx.QueryRow(`SELECT `+feeColumns+` FROM fees WHERE id = $1 FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// TotalPaid sums a fee's payments.
func TotalPaid(db DBTX, feeID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM fee_payments WHERE fee_id = $1`, feeID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// checkPaymentFits decides whether a payment of amount is accepted on
// a fee of feeAmount with paid already allocated: a payment pushing the
// sum over the fee amount is rejected with ErrFeeOverpaid. The boolean
// reports whether the fee becomes fully covered.
func checkPaymentFits(feeAmount, paid, amount decimal.Decimal) (bool, error) {
	if amount.GreaterThan(feeAmount.Sub(paid)) {
		return false, ErrFeeOverpaid
	}
	return paid.Add(amount).GreaterThanOrEqual(feeAmount), nil
}

// InsertFeePayment writes one allocation of money to a fee inside the
// caller's unit of work. The fee row is locked first so two concurrent
// payments cannot both read a stale pending amount; a payment that
// would push the sum over the fee amount is rejected with no row
// written. A fee fully covered by its payments gets its stored status
// flipped to paid.
func InsertFeePayment(tx DBTX, payment *models.FeePayment) error {
	if !payment.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if payment.PaymentDate.IsZero() {
		return invalid("payment_date", "must be set")
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.MethodOther
	}

	fee, err := lockFee(tx, payment.FeeID)
	if err != nil {
		return err
	}
	paid, err := TotalPaid(tx, payment.FeeID)
	if err != nil {
		return err
	}
	coversFee, err := checkPaymentFits(fee.Amount, paid, payment.Amount)
	if err != nil {
		return err
	}

	query := `INSERT INTO fee_payments
			  (fee_id, financial_transaction_id, amount, payment_method, payment_date, reference, notes, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at`
	err = tx.QueryRow(query,
		payment.FeeID, payment.FinancialTransactionID, payment.Amount,
		string(payment.PaymentMethod), payment.PaymentDate,
		payment.Reference, payment.Notes, payment.CreatedBy,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fee payment: %v", err)
	}

	if coversFee {
		if _, err := tx.Exec(`UPDATE fees SET status = 'paid', updated_at = NOW() WHERE id = $1`, fee.ID); err != nil {
			return fmt.Errorf("failed to flag fee as paid: %v", err)
		}
	}
	return nil
}

// MarkFeeAsPaid forces the stored status to paid regardless of the
// payment sum. Administrative override for debts settled outside the
// system; read paths let a stored paid status win over the status
// derived from the payment rows.
func MarkFeeAsPaid(db DBTX, feeID string) error {
	result, err := db.Exec(`UPDATE fees SET status = 'paid', updated_at = NOW() WHERE id = $1`, feeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFeePayments returns a fee's payments, oldest first.
func ListFeePayments(db DBTX, feeID string) ([]*models.FeePayment, error) {
	query := `SELECT id, fee_id, financial_transaction_id, amount, payment_method, payment_date,
			  reference, notes, created_by, created_at
			  FROM fee_payments WHERE fee_id = $1
			  ORDER BY payment_date ASC, created_at ASC, id ASC`
	rows, err := db.Query(query, feeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		p := &models.FeePayment{}
		var transactionID, reference, notes sql.NullString
		var method string
		if err := rows.Scan(
			&p.ID, &p.FeeID, &transactionID, &p.Amount, &method, &p.PaymentDate,
			&reference, &notes, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.PaymentMethod = models.PaymentMethod(method)
		if transactionID.Valid {
			p.FinancialTransactionID = &transactionID.String
		}
		if reference.Valid {
			p.Reference = &reference.String
		}
		if notes.Valid {
			p.Notes = &notes.String
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// FeeFilters narrows the fee listing. Status filters on the derived
// status, so they are applied after the paid sums are known.
type FeeFilters struct {
	FractionID        string
	Year              *int
	Month             *int
	FeeType           models.FeeType
	Status            models.FeeStatus
	IncludeHistorical bool
}

// buildFeeFilterClause renders the SQL predicate for the filters.
// Historical debts ignore period filters entirely: when included they
// always appear no matter the year/month asked for, and when excluded
// they never do. Regular fees obey the period filters as usual.
func buildFeeFilterClause(condominiumID string, filters *FeeFilters) (string, []interface{}) {
	clause := `WHERE f.condominium_id = $1`
	args := []interface{}{condominiumID}
	next := 2

	add := func(predicate string, value interface{}) {
		clause += fmt.Sprintf(" AND "+predicate, next)
		args = append(args, value)
		next++
	}

	if filters == nil {
		filters = &FeeFilters{}
	}
	if filters.FractionID != "" {
		add("f.fraction_id = $%d", filters.FractionID)
	}
	if filters.FeeType != "" {
		add("f.fee_type = $%d", string(filters.FeeType))
	}

	var period string
	var periodArgs []interface{}
	if filters.Year != nil {
		period = fmt.Sprintf("f.period_year = $%d", next)
		periodArgs = append(periodArgs, *filters.Year)
		next++
	}
	if filters.Month != nil {
		pred := fmt.Sprintf("f.period_month = $%d", next)
		if period == "" {
			period = pred
		} else {
			period += " AND " + pred
		}
		periodArgs = append(periodArgs, *filters.Month)
		next++
	}

	switch {
	case filters.IncludeHistorical && period != "":
		clause += " AND (f.is_historical = true OR (" + period + "))"
		args = append(args, periodArgs...)
	case filters.IncludeHistorical:
		// nothing to narrow: historical and regular fees alike
	case period != "":
		clause += " AND f.is_historical = false AND " + period
		args = append(args, periodArgs...)
	default:
		clause += " AND f.is_historical = false"
	}

	return clause, args
}

// ListFees returns a condominium's fees with their paid sums and
// derived statuses, due soonest first.
func ListFees(db DBTX, condominiumID string, filters *FeeFilters) ([]*models.FeeWithPaid, error) {
	clause, args := buildFeeFilterClause(condominiumID, filters)
	query := `SELECT ` + prefixColumns("f", feeColumns) + `,
			  COALESCE((SELECT SUM(fp.amount) FROM fee_payments fp WHERE fp.fee_id = f.id), 0) AS paid_amount
			  FROM fees f ` + clause + `
			  ORDER BY f.due_date ASC, f.created_at ASC, f.id ASC`
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := time.Now()
	var fees []*models.FeeWithPaid
	for rows.Next() {
		item, err := scanFeeWithPaid(rows, today)
		if err != nil {
			return nil, err
		}
		if filters != nil && filters.Status != "" && item.EffectiveStatus != filters.Status {
			continue
		}
		fees = append(fees, item)
	}
	return fees, rows.Err()
}

func scanFeeWithPaid(rows *sql.Rows, today time.Time) (*models.FeeWithPaid, error) {
	item := &models.FeeWithPaid{}
	var periodMonth sql.NullInt64
	var reference, notes sql.NullString

	err := rows.Scan(
		&item.ID, &item.CondominiumID, &item.FractionID, &item.PeriodType, &item.PeriodYear, &periodMonth,
		&item.FeeType, &item.Amount, &item.BaseAmount, &item.DueDate, &item.Status, &item.IsHistorical,
		&reference, &notes, &item.CreatedAt, &item.UpdatedAt, &item.PaidAmount,
	)
	if err != nil {
		return nil, err
	}
	if periodMonth.Valid {
		m := int(periodMonth.Int64)
		item.PeriodMonth = &m
	}
	if reference.Valid {
		item.Reference = &reference.String
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	item.EffectiveStatus = models.DeriveFeeStatus(item.Amount, item.PaidAmount, item.DueDate, today)
	if item.Status == models.FeePaid {
		// Administrative override wins over the derived state.
		item.EffectiveStatus = models.FeePaid
	}
	return item, nil
}

// PendingFeesForLiquidation locks and returns a fraction's unpaid fees
// with their paid sums, oldest due date first: historical debts and
// older periods always clear before newer ones.
func PendingFeesForLiquidation(tx DBTX, fractionID string, today time.Time) ([]*models.FeeWithPaid, error) {
	query := `SELECT ` + feeColumns + `
			  FROM fees
			  WHERE fraction_id = $1 AND status = 'pending'
			  ORDER BY due_date ASC, created_at ASC, id ASC
			  FOR UPDATE`
	rows, err := tx.Query(query, fractionID)
	if err != nil {
		return nil, err
	}
	var fees []*models.Fee
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		fees = append(fees, fee)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*models.FeeWithPaid, 0, len(fees))
	for _, fee := range fees {
		paid, err := TotalPaid(tx, fee.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.FeeWithPaid{
			Fee:             *fee,
			PaidAmount:      paid,
			EffectiveStatus: models.DeriveFeeStatus(fee.Amount, paid, fee.DueDate, today),
		})
	}
	return result, nil
}

// FeeUpdate carries the editable fields of a fee.
type FeeUpdate struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	DueDate   *time.Time       `json:"due_date,omitempty"`
	Reference *string          `json:"reference,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

// UpdateFee edits a fee. The amount can never drop below what has
// already been paid.
func UpdateFee(db *sql.DB, id string, update *FeeUpdate) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fee, err := lockFee(tx, id)
	if err != nil {
		return err
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return invalid("amount", "must be greater than zero")
		}
		paid, err := TotalPaid(tx, fee.ID)
		if err != nil {
			return err
		}
		if update.Amount.LessThan(paid) {
			return ErrFeeOverpaid
		}
	}

	query := `UPDATE fees SET
			  amount = COALESCE($1, amount),
			  due_date = COALESCE($2, due_date),
			  reference = COALESCE($3, reference),
			  notes = COALESCE($4, notes),
			  updated_at = NOW()
			  WHERE id = $5`
	if _, err := tx.Exec(query, update.Amount, update.DueDate, update.Reference, update.Notes, id); err != nil {
		return fmt.Errorf("failed to update fee: %v", err)
	}
	return tx.Commit()
}

// DeleteFee removes a fee that has no payments against it.
func DeleteFee(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := lockFee(tx, id); err != nil {
		return err
	}
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM fee_payments WHERE fee_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrFeeHasPayments
	}
	if _, err := tx.Exec(`DELETE FROM fees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete fee: %v", err)
	}
	return tx.Commit()
}
