package handlers

import (
	"net/http"

	"github.com/shopsignal/engagement/internal/application/activity"
	"github.com/shopsignal/engagement/internal/application/campaign"
	"github.com/shopsignal/engagement/internal/application/scoring"
	"github.com/shopsignal/engagement/internal/domain"
	"github.com/shopsignal/engagement/internal/transport/http/dto"
	"github.com/shopsignal/engagement/internal/transport/http/response"
	"github.com/shopsignal/engagement/internal/transport/http/validate"
)

type EngagementHandler struct {
	recorder  *activity.Service
	scores    *scoring.Service
	confirmer *campaign.Confirmer
	scheduler *campaign.Scheduler
}

func NewEngagementHandler(
	recorder *activity.Service,
	scores *scoring.Service,
	confirmer *campaign.Confirmer,
	scheduler *campaign.Scheduler,
) *EngagementHandler {
	return &EngagementHandler{
		recorder:  recorder,
		scores:    scores,
		confirmer: confirmer,
		scheduler: scheduler,
	}
}

// RecordEvent absorbs one activity event.
func (h *EngagementHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.EventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	res, err := h.recorder.Record(r.Context(), activity.RecordCmd{
		UserID:         req.UserID,
		ProductID:      req.ProductID,
		Action:         req.Action,
		IsLoggedInUser: req.IsLoggedInUser,
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Data(w, http.StatusAccepted, dto.EventResp{
		AnonymousUserID: res.AnonymousUserID,
		Record:          dto.ToActivityResp(res.Record),
	})
}

// Leads returns enriched activity rows for the reporting dashboard.
func (h *EngagementHandler) Leads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.recorder.Leads(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]dto.LeadResp, 0, len(leads))
	for _, l := range leads {
		out = append(out, dto.ToLeadResp(l))
	}
	response.Data(w, http.StatusOK, out)
}

// Leaderboard returns users ordered by descending weighted score.
func (h *EngagementHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.scores.Leaderboard(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, board)
}

// MostEngaged returns the single top-scored user.
func (h *EngagementHandler) MostEngaged(w http.ResponseWriter, r *http.Request) {
	top, err := h.scores.MostEngaged(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, top)
}

// OrderHook records a purchase and triggers the confirmation send inline.
func (h *EngagementHandler) OrderHook(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderHookReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	rec, err := h.confirmer.OrderCreated(r.Context(), req.UserID, req.ProductID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusAccepted, dto.ToActivityResp(rec))
}

// Campaigns reports the scheduled jobs and their last outcomes.
func (h *EngagementHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, h.scheduler.Status())
}
