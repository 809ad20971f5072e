package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsignal/engagement/internal/domain"
)

func TestParseOrderEvent(t *testing.T) {
	ev, err := ParseOrderEvent([]byte(`{"order_id":"o1","user_id":"u1","product_id":"p1"}`))

	require.NoError(t, err)
	assert.Equal(t, "o1", ev.OrderID)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "p1", ev.ProductID)
}

func TestParseOrderEvent_MalformedJSON(t *testing.T) {
	_, err := ParseOrderEvent([]byte(`{"order_id":`))

	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.CodeValidation, appErr.Code)
}

func TestParseOrderEvent_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing_user", `{"order_id":"o1","product_id":"p1"}`},
		{"missing_product", `{"order_id":"o1","user_id":"u1"}`},
		{"empty_object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderEvent([]byte(tt.body))
			require.Error(t, err)
			var appErr *domain.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domain.CodeValidation, appErr.Code)
		})
	}
}

func TestParseOrderEvent_IgnoresUnknownFields(t *testing.T) {
	ev, err := ParseOrderEvent([]byte(`{"user_id":"u1","product_id":"p1","total":42.5}`))

	require.NoError(t, err)
	assert.Equal(t, "u1", ev.UserID)
}
