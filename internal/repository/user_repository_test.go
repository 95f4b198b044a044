package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/okandemir/student-info-api/internal/utils"
)

const (
	selectUserByUsername = "SELECT id,username,password_hash,email,role,created_at,updated_at FROM users WHERE BINARY username=? LIMIT 1"
	selectUserByID       = "SELECT id,username,password_hash,email,role,created_at,updated_at FROM users WHERE id=? LIMIT 1"
)

var userCols = []string{"id", "username", "password_hash", "email", "role", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userRow(id uint64, username, hash, email, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(id, username, hash, email, role, now, now)
}

func TestUserRepoCreate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users (username, password_hash, email, role) VALUES (?,?,?,?)").
		WithArgs("alice", sqlmock.AnyArg(), "alice@school.edu", "student").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), " alice ", "password123", "Alice@School.EDU", "student", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users (username, password_hash, email, role) VALUES (?,?,?,?)").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'uq_users_username'"))

	_, err := repo.Create(context.Background(), "alice", "password123", "alice@school.edu", "student", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrUsernameExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByUsername(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	hash, err := utils.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(selectUserByUsername).
		WithArgs("alice").
		WillReturnRows(userRow(7, "alice", hash, "alice@school.edu", "student"))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "student", u.Role)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "password123"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByUsernameNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(selectUserByUsername).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET username=?, email=? WHERE id=?").
		WithArgs("bob", "bob@school.edu", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 99, "bob", "bob@school.edu")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdatePassword(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET password_hash=? WHERE id=?").
		WithArgs(sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), 7, "newpassword1", bcrypt.MinCost))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDeleteNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("DELETE FROM users WHERE id=?").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
