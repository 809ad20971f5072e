package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsignal/engagement/internal/domain"
)

func activityColumns() []string {
	return []string{
		"id", "user_id", "product_id", "action", "is_loggedin_user",
		"views", "purchases", "cart_adds", "created_at", "updated_at",
	}
}

func TestActivityRepo_Upsert_FirstEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepo(db)
	now := time.Now().UTC()
	rec, err := domain.NewActivityRecord("u1", "p1", domain.ActionViewed, true, now)
	require.NoError(t, err)

	rows := sqlmock.NewRows(activityColumns()).AddRow(
		rec.ID, "u1", "p1", "viewed", true,
		1, 0, 0, now, now,
	)

	mock.ExpectQuery("INSERT INTO user_activity").
		WithArgs(rec.ID, "u1", "p1", "viewed", true, int64(1), int64(0), int64(0), now, now).
		WillReturnRows(rows)

	got, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, domain.ActionViewed, got.Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepo_Upsert_ConflictFoldsCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepo(db)
	now := time.Now().UTC()
	rec, err := domain.NewActivityRecord("u1", "p1", domain.ActionViewed, true, now)
	require.NoError(t, err)

	// the store returns the accumulated state, keeping the original row id
	rows := sqlmock.NewRows(activityColumns()).AddRow(
		"existing-row-id", "u1", "p1", "viewed", true,
		5, 0, 0, now.Add(-time.Hour), now,
	)

	mock.ExpectQuery("INSERT INTO user_activity").WillReturnRows(rows)

	got, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "existing-row-id", got.ID)
	assert.Equal(t, int64(5), got.Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepo_ListLeads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepo(db)
	now := time.Now().UTC()

	cols := append(activityColumns(), "username", "email", "name", "price", "category")
	rows := sqlmock.NewRows(cols).
		AddRow("r1", "u1", "p1", "buy", true, 0, 2, 0, now, now,
			"ann", "ann@example.com", "Mug", 12.5, "kitchen").
		AddRow("r2", "u2", "p2", "viewed", true, 3, 0, 0, now, now,
			"bob", "bob@example.com", "", 0.0, "")

	mock.ExpectQuery("SELECT (.+) FROM user_activity a").WillReturnRows(rows)

	leads, err := repo.ListLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, domain.ActionBuy, leads[0].Action)
	assert.Equal(t, "ann", leads[0].Username)
	assert.Equal(t, 12.5, leads[0].ProductPrice)
	assert.Equal(t, "kitchen", leads[0].ProductCategory)

	// product missing: COALESCE empties, the row is still returned
	assert.Equal(t, "", leads[1].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepo_ListLeadRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewActivityRepo(db)

	rows := sqlmock.NewRows([]string{"user_id", "username", "email", "views", "purchases", "cart_adds"}).
		AddRow("u1", "ann", "ann@example.com", 4, 1, 2).
		AddRow("u1", "ann", "ann@example.com", 1, 0, 0)

	mock.ExpectQuery("SELECT a.user_id, u.username").WillReturnRows(rows)

	got, err := repo.ListLeadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}
