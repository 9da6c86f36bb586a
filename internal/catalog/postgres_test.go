// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"bizpath-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "definition"}).
		AddRow("freelance", []byte(`{"name": "Freelance", "requiredTraits": {"selfMotivation": {"weight": 1}}}`)).
		AddRow("legacy", []byte(`{"businessPath": {"title": "Legacy", "traits": {"creativity": 1}}}`)).
		AddRow("garbage", []byte(`not json`))
	mock.ExpectQuery("SELECT id, definition FROM business_models").WillReturnRows(rows)

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	c, issues, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"freelance", "legacy", "garbage"}, c.IDs())
	legacy, _ := c.Lookup("legacy")
	assert.Equal(t, "Legacy", legacy.Name)

	require.Len(t, issues, 1)
	assert.Equal(t, "garbage", issues[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, definition").WillReturnError(errors.New("connection refused"))

	_, _, err = NewPostgresStore(db, logger.NewNoOpLogger()).Load(context.Background())
	assert.ErrorIs(t, err, ErrCatalogLoad)
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c, err := New(sampleEntries())
	require.NoError(t, err)

	mock.ExpectBegin()
	for i, id := range c.IDs() {
		mock.ExpectExec("INSERT INTO business_models").
			WithArgs(id, i, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err = NewPostgresStore(db, logger.NewNoOpLogger()).Save(context.Background(), c)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c, err := New(sampleEntries())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO business_models").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewPostgresStore(db, logger.NewNoOpLogger()).Save(context.Background(), c)
	assert.ErrorContains(t, err, "upsert alpha")
	assert.NoError(t, mock.ExpectationsWereMet())
}
