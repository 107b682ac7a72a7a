// Package repository provides data persistence implementations for accounts, pending
// registrations and password resets on PostgreSQL and MySQL.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

const accountColumns = `id, username, email, password_ciphertext, password_tag, password_nonce, password_salt,
			  profile_picture, is_admin, name, credit_card_number, address, phone, created_at, updated_at`

const registrationColumns = `id, username, email, name, password_ciphertext, password_tag, password_nonce,
			  password_salt, otp_hash, attempts, expires_at, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one row selected with accountColumns. Customer details are
// populated for non-admin accounts only.
func scanAccount(row scanner) (*accountDomain.Account, error) {
	var account accountDomain.Account
	var envelope cryptoDomain.Envelope
	var creditCardNumber, address, phone sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&envelope.Ciphertext,
		&envelope.Tag,
		&envelope.Nonce,
		&envelope.Salt,
		&account.ProfilePicture,
		&account.IsAdmin,
		&account.Name,
		&creditCardNumber,
		&address,
		&phone,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Password = &envelope
	if !account.IsAdmin {
		account.Customer = &accountDomain.Customer{
			CreditCardNumber: creditCardNumber.String,
			Address:          address.String,
			Phone:            phone.String,
		}
	}
	return &account, nil
}

// customerArgs returns the nullable customer columns of an account.
func customerArgs(account *accountDomain.Account) (creditCardNumber, address, phone sql.NullString) {
	if account.Customer == nil {
		return
	}
	creditCardNumber = sql.NullString{String: account.Customer.CreditCardNumber, Valid: true}
	address = sql.NullString{String: account.Customer.Address, Valid: true}
	phone = sql.NullString{String: account.Customer.Phone, Valid: true}
	return
}

// scanRegistration reads one row selected with registrationColumns.
func scanRegistration(row scanner) (*accountDomain.PendingRegistration, error) {
	var registration accountDomain.PendingRegistration
	var envelope cryptoDomain.Envelope

	err := row.Scan(
		&registration.ID,
		&registration.Username,
		&registration.Email,
		&registration.Name,
		&envelope.Ciphertext,
		&envelope.Tag,
		&envelope.Nonce,
		&envelope.Salt,
		&registration.OTPHash,
		&registration.Attempts,
		&registration.ExpiresAt,
		&registration.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	registration.Password = &envelope
	return &registration, nil
}

// isPostgreSQLUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isMySQLDuplicateEntry reports whether err is a MySQL ER_DUP_ENTRY (1062).
func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// requireAffected returns notFound when a statement matched no rows.
func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
