package gym

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGymID = "7b0f1b1e-4a8c-4a55-9d3c-6f1f1a0c2d11"

var gymColumns = []string{"id", "name", "slug", "timezone", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateGym(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO gyms.*`).
		WithArgs("Nova Combat Academy", "nova-combat-academy", "America/New_York").
		WillReturnRows(sqlmock.NewRows(gymColumns).
			AddRow(testGymID, "Nova Combat Academy", "nova-combat-academy", "America/New_York", now, now))

	gym, err := repo.CreateGym(context.Background(), "Nova Combat Academy", "nova-combat-academy", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, testGymID, gym.ID)
	assert.Equal(t, "nova-combat-academy", gym.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllGyms(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, slug, timezone, created_at, updated_at`)).
		WillReturnRows(sqlmock.NewRows(gymColumns).
			AddRow(testGymID, "Gym A", "gym-a", "UTC", now, now).
			AddRow("2c1d6f0e-3b9a-4f7e-8a2b-1c0d9e8f7a6b", "Gym B", "gym-b", "UTC", now, now))

	gyms, err := repo.GetAllGyms(context.Background())
	require.NoError(t, err)
	assert.Len(t, gyms, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllGyms_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM gyms`).WillReturnRows(sqlmock.NewRows(gymColumns))

	gyms, err := repo.GetAllGyms(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, gyms)
	assert.Empty(t, gyms)
}

func TestGetGymByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM gyms\s+WHERE id = \$1`).
		WithArgs(testGymID).
		WillReturnRows(sqlmock.NewRows(gymColumns).
			AddRow(testGymID, "Gym A", "gym-a", "UTC", now, now))

	gym, err := repo.GetGymByID(context.Background(), testGymID)
	require.NoError(t, err)
	assert.Equal(t, testGymID, gym.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGymByID_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM gyms\s+WHERE id = \$1`).
		WithArgs(testGymID).
		WillReturnRows(sqlmock.NewRows(gymColumns))

	_, err := repo.GetGymByID(context.Background(), testGymID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
