// Package scoring turns raw activity rows into the engagement leaderboard.
package scoring

import (
	"context"

	"github.com/shopsignal/engagement/internal/domain"
)

// LeadSource is the read path into the activity store.
type LeadSource interface {
	ListLeadRows(ctx context.Context) ([]domain.LeadRow, error)
}

type Service struct {
	source LeadSource
}

func New(source LeadSource) *Service {
	return &Service{source: source}
}

// Leaderboard recomputes the full ranking from the store. Pure read; safe to
// call on every request.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeadAggregate, error) {
	rows, err := s.source.ListLeadRows(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ComputeLeaderboard(rows), nil
}

// MostEngaged returns the top-ranked user.
func (s *Service) MostEngaged(ctx context.Context) (*domain.LeadAggregate, error) {
	board, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if len(board) == 0 {
		return nil, domain.ErrNotFound("no activity recorded yet")
	}
	top := board[0]
	return &top, nil
}
