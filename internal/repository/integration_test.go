//go:build integration

package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/staffapi/internal/config"
	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/UnknownOlympus/staffapi/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const employeesSchema = `
	CREATE TABLE employees (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		position TEXT NOT NULL
	);`

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("staff"),
		postgres.WithUsername("staff"),
		postgres.WithPassword("staff"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbpool, err := repository.NewDatabase(ctx, config.PostgresConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "staff",
		Password: "staff",
		Dbname:   "staff",
		MaxConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(dbpool.Close)

	_, err = dbpool.Exec(ctx, employeesSchema)
	require.NoError(t, err)

	return dbpool
}

func countEmployees(t *testing.T, dbpool *pgxpool.Pool) int {
	t.Helper()

	var count int
	require.NoError(t, dbpool.QueryRow(context.Background(), "SELECT count(*) FROM employees").Scan(&count))

	return count
}

func TestEmployeeRepository_Postgres(t *testing.T) {
	dbpool := startPostgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewEmployeeRepository(dbpool, logger, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	t.Run("empty table lists nothing", func(t *testing.T) {
		employees, err := repo.ListEmployees(ctx)

		require.NoError(t, err)
		assert.Empty(t, employees)
	})

	t.Run("create then get returns the same employee", func(t *testing.T) {
		for range 5 {
			created, err := repo.CreateEmployee(ctx, "Random Person", randomail.GenerateRandomEmail(), "Eng")
			require.NoError(t, err)
			assert.Positive(t, created.ID)

			fetched, found, err := repo.GetEmployeeByID(ctx, created.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, created, fetched)
		}
	})

	t.Run("update is idempotent", func(t *testing.T) {
		created, err := repo.CreateEmployee(ctx, "Ana", "a@x.com", "Eng")
		require.NoError(t, err)

		first, err := repo.UpdateEmployee(ctx, created.ID, "Ana B", "a@x.com", "Sr Eng")
		require.NoError(t, err)
		second, err := repo.UpdateEmployee(ctx, created.ID, "Ana B", "a@x.com", "Sr Eng")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		stored, found, err := repo.GetEmployeeByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, models.Employee{ID: created.ID, Name: "Ana B", Email: "a@x.com", Position: "Sr Eng"}, stored)
	})

	t.Run("delete then get is absent", func(t *testing.T) {
		created, err := repo.CreateEmployee(ctx, "Bo", "b@x.com", "QA")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteEmployee(ctx, created.ID))

		_, found, err := repo.GetEmployeeByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("update and delete of a missing id succeed without touching rows", func(t *testing.T) {
		before := countEmployees(t, dbpool)

		updated, err := repo.UpdateEmployee(ctx, 999999, "Ghost", "g@x.com", "None")
		require.NoError(t, err)
		assert.Equal(t, 999999, updated.ID)
		require.NoError(t, repo.DeleteEmployee(ctx, 999999))

		assert.Equal(t, before, countEmployees(t, dbpool))
	})

	t.Run("parameters are never interpolated", func(t *testing.T) {
		hostile := "x'); DROP TABLE employees; --"
		created, err := repo.CreateEmployee(ctx, hostile, "h@x.com", "Eng")
		require.NoError(t, err)

		fetched, found, err := repo.GetEmployeeByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, hostile, fetched.Name)
	})
}
