package database

import (
	"database/sql"
	"fmt"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
)

func GetUserByEmail(db DBTX, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db DBTX, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreateUser(db DBTX, user *models.User) error {
	query := `INSERT INTO users (email, password, first_name, last_name, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, user.Email, user.Password, user.FirstName, user.LastName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	user.IsActive = true
	return nil
}

func UpdateUserPassword(db DBTX, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func CreateCondominium(db DBTX, condominium *models.Condominium) error {
	if condominium.Name == "" {
		return invalid("name", "must not be empty")
	}
	query := `INSERT INTO condominiums (name, address, is_active)
			  VALUES ($1, $2, true)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, condominium.Name, condominium.Address).
		Scan(&condominium.ID, &condominium.CreatedAt, &condominium.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert condominium: %v", err)
	}
	condominium.IsActive = true
	return nil
}

func GetCondominiumByID(db DBTX, id string) (*models.Condominium, error) {
	condominium := &models.Condominium{}
	var address sql.NullString
	query := `SELECT id, name, address, is_active, created_at, updated_at
			  FROM condominiums WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(
		&condominium.ID, &condominium.Name, &address,
		&condominium.IsActive, &condominium.CreatedAt, &condominium.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if address.Valid {
		condominium.Address = &address.String
	}
	return condominium, nil
}

func ListCondominiums(db DBTX) ([]*models.Condominium, error) {
	query := `SELECT id, name, address, is_active, created_at, updated_at
			  FROM condominiums WHERE deleted_at IS NULL ORDER BY name`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var condominiums []*models.Condominium
	for rows.Next() {
		condominium := &models.Condominium{}
		var address sql.NullString
		if err := rows.Scan(
			&condominium.ID, &condominium.Name, &address,
			&condominium.IsActive, &condominium.CreatedAt, &condominium.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if address.Valid {
			condominium.Address = &address.String
		}
		condominiums = append(condominiums, condominium)
	}
	return condominiums, rows.Err()
}

func CreateFraction(db DBTX, fraction *models.Fraction) error {
	if fraction.Label == "" {
		return invalid("label", "must not be empty")
	}
	if fraction.Permillage <= 0 {
		return invalid("permillage", "must be greater than zero")
	}
	if _, err := GetCondominiumByID(db, fraction.CondominiumID); err != nil {
		return err
	}

	query := `INSERT INTO fractions (condominium_id, label, owner_name, permillage, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		fraction.CondominiumID, fraction.Label, fraction.OwnerName, fraction.Permillage,
	).Scan(&fraction.ID, &fraction.CreatedAt, &fraction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fraction: %v", err)
	}
	fraction.IsActive = true
	return nil
}

func GetFractionByID(db DBTX, id string) (*models.Fraction, error) {
	fraction := &models.Fraction{}
	query := `SELECT id, condominium_id, label, owner_name, permillage, is_active, created_at, updated_at
			  FROM fractions WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(
		&fraction.ID, &fraction.CondominiumID, &fraction.Label, &fraction.OwnerName,
		&fraction.Permillage, &fraction.IsActive, &fraction.CreatedAt, &fraction.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fraction, nil
}

func ListFractions(db DBTX, condominiumID string) ([]*models.Fraction, error) {
	query := `SELECT id, condominium_id, label, owner_name, permillage, is_active, created_at, updated_at
			  FROM fractions
			  WHERE condominium_id = $1 AND deleted_at IS NULL
			  ORDER BY label`
	rows, err := db.Query(query, condominiumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fractions []*models.Fraction
	for rows.Next() {
		fraction := &models.Fraction{}
		if err := rows.Scan(
			&fraction.ID, &fraction.CondominiumID, &fraction.Label, &fraction.OwnerName,
			&fraction.Permillage, &fraction.IsActive, &fraction.CreatedAt, &fraction.UpdatedAt,
		); err != nil {
			return nil, err
		}
		fractions = append(fractions, fraction)
	}
	return fractions, rows.Err()
}

// ListActiveFractions returns the fractions billed by fee generation.
func ListActiveFractions(db DBTX, condominiumID string) ([]*models.Fraction, error) {
	query := `SELECT id, condominium_id, label, owner_name, permillage, is_active, created_at, updated_at
			  FROM fractions
			  WHERE condominium_id = $1 AND is_active = true AND deleted_at IS NULL
			  ORDER BY label`
	rows, err := db.Query(query, condominiumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fractions []*models.Fraction
	for rows.Next() {
		fraction := &models.Fraction{}
		if err := rows.Scan(
			&fraction.ID, &fraction.CondominiumID, &fraction.Label, &fraction.OwnerName,
			&fraction.Permillage, &fraction.IsActive, &fraction.CreatedAt, &fraction.UpdatedAt,
		); err != nil {
			return nil, err
		}
		fractions = append(fractions, fraction)
	}
	return fractions, rows.Err()
}

func UpdateFraction(db DBTX, fraction *models.Fraction) error {
	query := `UPDATE fractions SET label = $1, owner_name = $2, permillage = $3, is_active = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`
	result, err := db.Exec(query,
		fraction.Label, fraction.OwnerName, fraction.Permillage, fraction.IsActive, fraction.ID,
	)
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
