package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsignal/engagement/internal/domain"
)

type fakeSource struct {
	rows []domain.LeadRow
	err  error
}

func (f *fakeSource) ListLeadRows(ctx context.Context) ([]domain.LeadRow, error) {
	return f.rows, f.err
}

func TestLeaderboard_OrdersByScore(t *testing.T) {
	svc := New(&fakeSource{rows: []domain.LeadRow{
		{UserID: "casual", Username: "casual", Views: 2},                    // 2
		{UserID: "whale", Username: "whale", Purchases: 5},                  // 15
		{UserID: "browser", Username: "browser", Views: 3, CartAdds: 2},     // 7
	}})

	board, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "whale", board[0].UserID)
	assert.Equal(t, "browser", board[1].UserID)
	assert.Equal(t, "casual", board[2].UserID)
}

func TestMostEngaged(t *testing.T) {
	svc := New(&fakeSource{rows: []domain.LeadRow{
		{UserID: "u1", Purchases: 1},
		{UserID: "u2", Purchases: 3},
	}})

	top, err := svc.MostEngaged(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u2", top.UserID)
	assert.Equal(t, int64(9), top.WeightedScore)
}

func TestMostEngaged_EmptyStore(t *testing.T) {
	svc := New(&fakeSource{})

	_, err := svc.MostEngaged(context.Background())
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeNotFound, ae.Code)
}

func TestLeaderboard_SourceError(t *testing.T) {
	svc := New(&fakeSource{err: domain.ErrUnavailable("store down")})

	_, err := svc.Leaderboard(context.Background())
	assert.Error(t, err)
}
