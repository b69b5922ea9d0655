package services

import (
	"context"
	"testing"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionService(t *testing.T) (*SessionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewSessionService(db, 168*time.Hour), mock
}

func TestSessionService_Create(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(userID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	token, err := svc.Create(ctx, userID)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	// Only the hash goes to the store, never the raw token.
	assert.NotEqual(t, token, HashToken(token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Create_UniqueTokens(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(userID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(userID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	token1, err := svc.Create(ctx, userID)
	require.NoError(t, err)
	token2, err := svc.Create(ctx, userID)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Validate_Valid(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	userID := uuid.New()
	token := "raw-session-token"

	mock.ExpectQuery(`SELECT user_id FROM sessions`).
		WithArgs(HashToken(token)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(userID))

	result, err := svc.Validate(ctx, token)

	assert.NoError(t, err)
	assert.Equal(t, userID, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Validate_ExpiredOrUnknown(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	token := "stale-token"

	mock.ExpectQuery(`SELECT user_id FROM sessions`).
		WithArgs(HashToken(token)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Validate(ctx, token)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Revoke(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	token := "raw-session-token"

	mock.ExpectExec(`DELETE FROM sessions WHERE token_hash`).
		WithArgs(HashToken(token)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Revoke(ctx, token)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_RevokeAllUserSessions(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM sessions WHERE user_id`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err := svc.RevokeAllUserSessions(ctx, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_CleanupExpired(t *testing.T) {
	svc, mock := setupSessionService(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at`).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	err := svc.CleanupExpired(ctx)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
