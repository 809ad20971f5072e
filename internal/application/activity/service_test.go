package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsignal/engagement/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type tupleKey struct {
	userID    string
	productID string
	action    domain.Action
}

// memRepo mimics the store's atomic fold-in upsert.
type memRepo struct {
	byTuple map[tupleKey]*domain.ActivityRecord
	failErr error
}

func newMemRepo() *memRepo { return &memRepo{byTuple: map[tupleKey]*domain.ActivityRecord{}} }

func (m *memRepo) Upsert(ctx context.Context, rec *domain.ActivityRecord) (*domain.ActivityRecord, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	k := tupleKey{rec.UserID, rec.ProductID, rec.Action}
	if existing, ok := m.byTuple[k]; ok {
		existing.Views += rec.Views
		existing.Purchases += rec.Purchases
		existing.CartAdds += rec.CartAdds
		existing.UpdatedAt = rec.UpdatedAt
		cp := *existing
		return &cp, nil
	}
	cp := *rec
	m.byTuple[k] = &cp
	out := cp
	return &out, nil
}

func (m *memRepo) ListLeads(ctx context.Context) ([]domain.LeadRecord, error) { return nil, nil }
func (m *memRepo) ListLeadRows(ctx context.Context) ([]domain.LeadRow, error) { return nil, nil }

func TestRecord_InvalidAction(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, fakeClock{t: time.Now().UTC()})

	_, err := svc.Record(context.Background(), RecordCmd{
		UserID: "u1", ProductID: "p1", Action: "clicked", IsLoggedInUser: true,
	})
	require.Error(t, err)

	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeInvalidAction, ae.Code)
	assert.Empty(t, repo.byTuple, "nothing may be written for a bad action")
}

func TestRecord_AnonymousMintsIDAndPersistsNothing(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, fakeClock{t: time.Now().UTC()})

	res, err := svc.Record(context.Background(), RecordCmd{
		ProductID: "p1", Action: "viewed", IsLoggedInUser: false,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AnonymousUserID)
	assert.Nil(t, res.Record)
	assert.Empty(t, repo.byTuple)

	// two anonymous events never collide on the same identity
	res2, err := svc.Record(context.Background(), RecordCmd{
		ProductID: "p1", Action: "viewed", IsLoggedInUser: false,
	})
	require.NoError(t, err)
	assert.NotEqual(t, res.AnonymousUserID, res2.AnonymousUserID)
}

func TestRecord_SameTupleTwiceYieldsOneRowCounterTwo(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})

	cmd := RecordCmd{UserID: "u1", ProductID: "p1", Action: "viewed", IsLoggedInUser: true}

	first, err := svc.Record(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Record.Views)

	second, err := svc.Record(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Record.Views)
	assert.Equal(t, int64(0), second.Record.Purchases)
	assert.Equal(t, int64(0), second.Record.CartAdds)

	assert.Len(t, repo.byTuple, 1)
}

func TestRecord_DistinctActionsDistinctRows(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, fakeClock{t: time.Now().UTC()})

	for _, action := range []string{"viewed", "added_to_cart", "buy"} {
		_, err := svc.Record(context.Background(), RecordCmd{
			UserID: "u1", ProductID: "p1", Action: action, IsLoggedInUser: true,
		})
		require.NoError(t, err)
	}
	assert.Len(t, repo.byTuple, 3)
}

func TestRecord_ProductRequiredExceptAccountCreated(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo, fakeClock{t: time.Now().UTC()})

	_, err := svc.Record(context.Background(), RecordCmd{
		UserID: "u1", Action: "buy", IsLoggedInUser: true,
	})
	assert.Error(t, err)

	res, err := svc.Record(context.Background(), RecordCmd{
		UserID: "u1", Action: "account_created", IsLoggedInUser: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Record.ProductID)
}

func TestRecord_StoreErrorSurfaces(t *testing.T) {
	repo := newMemRepo()
	repo.failErr = domain.ErrUnavailable("store down")
	svc := New(repo, fakeClock{t: time.Now().UTC()})

	_, err := svc.Record(context.Background(), RecordCmd{
		UserID: "u1", ProductID: "p1", Action: "buy", IsLoggedInUser: true,
	})
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeUnavailable, ae.Code)
}
