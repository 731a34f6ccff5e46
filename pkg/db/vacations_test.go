package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestAddVacation(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	added, err := database.AddVacation(ctx, "2026-03-02", "amy")
	require.NoError(t, err)
	assert.True(t, added)

	// Second insert of the same pair is ignored.
	added, err = database.AddVacation(ctx, "2026-03-02", "amy")
	require.NoError(t, err)
	assert.False(t, added)

	vacations, err := database.ListVacations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy"}, vacations["2026-03-02"])
}

func TestRemoveVacation(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.AddVacation(ctx, "2026-03-02", "amy")
	require.NoError(t, err)
	require.NoError(t, database.RemoveVacation(ctx, "2026-03-02", "amy"))

	vacations, err := database.ListVacations(ctx)
	require.NoError(t, err)
	assert.Empty(t, vacations["2026-03-02"])
}

func TestListVacationsBetween(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	for _, row := range [][2]string{
		{"2026-02-27", "amy"},
		{"2026-03-02", "ben"},
		{"2026-03-31", "cho"},
		{"2026-04-01", "dan"},
	} {
		_, err := database.AddVacation(ctx, row[0], row[1])
		require.NoError(t, err)
	}

	vacations, err := database.ListVacationsBetween(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	assert.Len(t, vacations, 2)
	assert.Equal(t, []string{"ben"}, vacations["2026-03-02"])
	assert.Equal(t, []string{"cho"}, vacations["2026-03-31"])
}

func TestDeleteVacationsMonth(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	for _, row := range [][2]string{
		{"2026-03-02", "amy"},
		{"2026-03-15", "ben"},
		{"2026-04-01", "cho"},
	} {
		_, err := database.AddVacation(ctx, row[0], row[1])
		require.NoError(t, err)
	}

	deleted, err := database.DeleteVacationsMonth(ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	vacations, err := database.ListVacations(ctx)
	require.NoError(t, err)
	assert.Len(t, vacations, 1)
	assert.Equal(t, []string{"cho"}, vacations["2026-04-01"])
}

func TestListVacations_MultipleWorkersPerDate(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.AddVacation(ctx, "2026-03-02", "amy")
	require.NoError(t, err)
	_, err = database.AddVacation(ctx, "2026-03-02", "ben")
	require.NoError(t, err)

	vacations, err := database.ListVacations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "ben"}, vacations["2026-03-02"])
}
