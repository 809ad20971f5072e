package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopsignal/engagement/internal/domain"
	"github.com/shopsignal/engagement/internal/metrics"
)

type Service struct {
	repo  ActivityRepo
	clock Clock
}

func New(repo ActivityRepo, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

type RecordCmd struct {
	UserID         string
	ProductID      string
	Action         string
	IsLoggedInUser bool
}

// RecordResult carries either the stored record or, for an anonymous caller,
// the minted identifier they should re-submit with once authenticated.
type RecordResult struct {
	AnonymousUserID string
	Record          *domain.ActivityRecord
}

// Record validates and applies one activity event. Anonymous events are not
// persisted: the caller gets a fresh identifier back and is expected to
// re-submit after login. Anonymous history is never merged.
func (s *Service) Record(ctx context.Context, cmd RecordCmd) (*RecordResult, error) {
	action, err := domain.ParseAction(cmd.Action)
	if err != nil {
		metrics.RecordEventRejected()
		return nil, err
	}

	if !cmd.IsLoggedInUser {
		return &RecordResult{AnonymousUserID: uuid.NewString()}, nil
	}

	rec, err := domain.NewActivityRecord(cmd.UserID, cmd.ProductID, action, true, s.clock.Now())
	if err != nil {
		metrics.RecordEventRejected()
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	metrics.RecordEvent(string(action))
	return &RecordResult{Record: stored}, nil
}

// Leads returns every activity row enriched for the reporting dashboard.
func (s *Service) Leads(ctx context.Context) ([]domain.LeadRecord, error) {
	return s.repo.ListLeads(ctx)
}
