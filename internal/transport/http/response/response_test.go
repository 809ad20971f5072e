package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopsignal/engagement/internal/domain"
)

func TestErr_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.ErrValidation("bad input"), http.StatusBadRequest, "validation_error"},
		{"invalid_action", domain.ErrInvalidAction("hovered"), http.StatusBadRequest, "invalid_action"},
		{"not_found", domain.ErrNotFound("nope"), http.StatusNotFound, "not_found"},
		{"unavailable", domain.ErrUnavailable("store down"), http.StatusServiceUnavailable, "unavailable"},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Err(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantCode)
		})
	}
}

func TestErr_ProviderErrorNotLeaked(t *testing.T) {
	rr := httptest.NewRecorder()
	Err(rr, domain.ErrProvider("sendgrid rejected message", errors.New("401 unauthorized")))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "sendgrid")
	assert.NotContains(t, rr.Body.String(), "401")
}

func TestData_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Data(rr, http.StatusOK, map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"n":1}}`, rr.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
}
