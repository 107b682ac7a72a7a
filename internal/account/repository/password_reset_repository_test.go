package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
)

func TestPostgreSQLPasswordResetRepository_GetByTokenHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLPasswordResetRepository(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "account_id", "token_hash", "expires_at", "used_at", "created_at"}).
		AddRow("reset-1", "acc-1", "hash", now.Add(time.Hour), nil, now)
	mock.ExpectQuery(`FROM password_resets WHERE token_hash = \$1`).WithArgs("hash").WillReturnRows(rows)

	reset, err := repo.GetByTokenHash(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", reset.AccountID)
	assert.Nil(t, reset.UsedAt)
}

func TestPostgreSQLPasswordResetRepository_GetByTokenHash_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLPasswordResetRepository(db)

	mock.ExpectQuery("FROM password_resets").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTokenHash(context.Background(), "hash")
	assert.ErrorIs(t, err, accountDomain.ErrPasswordResetNotFound)
}

func TestPostgreSQLPasswordResetRepository_MarkUsed(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLPasswordResetRepository(db)

		mock.ExpectExec(`UPDATE password_resets SET used_at = \$1 WHERE id = \$2 AND used_at IS NULL`).
			WithArgs(sqlmock.AnyArg(), "reset-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkUsed(context.Background(), "reset-1"))
	})

	t.Run("Error_AlreadyUsed", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLPasswordResetRepository(db)

		mock.ExpectExec("UPDATE password_resets").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkUsed(context.Background(), "reset-1")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidResetToken)
	})
}

func TestMySQLPasswordResetRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLPasswordResetRepository(db)
	now := time.Now().UTC()

	reset := &accountDomain.PasswordReset{
		ID:        "reset-1",
		AccountID: "acc-1",
		TokenHash: "hash",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	mock.ExpectExec(`INSERT INTO password_resets`).
		WithArgs("reset-1", "acc-1", "hash", reset.ExpiresAt, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), reset))
	assert.NoError(t, mock.ExpectationsWereMet())
}
