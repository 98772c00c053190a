package store

import (
	"testing"

	"crm-automation/internal/observability"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newMockStore returns a Store backed by sqlmock; expectations are verified on cleanup.
func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewWithDB(sqlx.NewDb(db, "sqlmock"), observability.NewLogger()), mock
}
