package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/services/auth"
)

func setupUserRepoTest(t *testing.T) (*UserRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := NewUserRepo(&models.Config{}, sqlxDB)

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func TestCreateUser(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	user := &models.User{
		Name:         "Jane Doe",
		Email:        "Jane@Example.com",
		PasswordHash: "$2a$10$hash",
		Roles:        []string{"USER"},
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			sqlmock.AnyArg(),
			user.Name,
			"jane@example.com",
			user.PasswordHash,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateUser(context.Background(), &models.User{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "roles", "created_at", "updated_at",
	}).AddRow(userID, "Jane Doe", "jane@example.com", "$2a$10$hash", "{USER}", now, now)

	mock.ExpectQuery("SELECT id, name, email, password_hash, roles").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "  Jane@Example.com ")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, []string{"USER"}, user.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, email, password_hash, roles").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByEmail(context.Background(), "missing@example.com")

	assert.Nil(t, user)
	assert.EqualError(t, err, "user not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "Jane@Example.com")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists_QueryError(t *testing.T) {
	repo, mock, cleanup := setupUserRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnError(errors.New("connection refused"))

	exists, err := repo.EmailExists(context.Background(), "jane@example.com")

	assert.False(t, exists)
	assert.Error(t, err)
}
