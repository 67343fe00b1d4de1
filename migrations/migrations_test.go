package migrations_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropportal/backend/internal/database"
	"github.com/cropportal/backend/migrations"
)

func setupMigrator(t *testing.T) (*migrations.Migrator, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return migrations.NewMigrator(&database.Pool{DB: db}), mock
}

func expectTableExists(mock sqlmock.Sqlmock, table string, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	migrator, mock := setupMigrator(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	// Both tables are missing, so both migrations run in transactions
	expectTableExists(mock, "users", false)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO migrations")).
		WithArgs("create_users_table", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	expectTableExists(mock, "analysis_results", false)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS analysis_results")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO migrations")).
		WithArgs("create_analysis_results_table", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, migrator.RunMigrations(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_AlreadyExecuted(t *testing.T) {
	migrator, mock := setupMigrator(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create_users_table").
			AddRow("create_analysis_results_table"))

	// Nothing else should touch the database
	require.NoError(t, migrator.RunMigrations(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_ExistingTableIsRecorded(t *testing.T) {
	migrator, mock := setupMigrator(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create_analysis_results_table"))

	// users table predates the migrations table: recorded, not re-created
	expectTableExists(mock, "users", true)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO migrations")).
		WithArgs("create_users_table", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, migrator.RunMigrations(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_RollsBackOnFailure(t *testing.T) {
	migrator, mock := setupMigrator(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	expectTableExists(mock, "users", false)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := migrator.RunMigrations(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMigrations(t *testing.T) {
	all := migrations.GetMigrations()
	require.Len(t, all, 2)

	assert.Equal(t, "create_users_table", all[0].Name)
	assert.Equal(t, "users", all[0].TableName)
	assert.Equal(t, "create_analysis_results_table", all[1].Name)
	assert.Equal(t, "analysis_results", all[1].TableName)
}
