package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLeaderboard_WeightedScore(t *testing.T) {
	rows := []LeadRow{
		{UserID: "u1", Username: "ann", Email: "ann@example.com", Views: 4, Purchases: 2, CartAdds: 1},
		{UserID: "u1", Username: "ann", Email: "ann@example.com", Views: 1, Purchases: 0, CartAdds: 0},
	}

	got := ComputeLeaderboard(rows)
	require.Len(t, got, 1)

	agg := got[0]
	assert.Equal(t, int64(2), agg.Buys)
	assert.Equal(t, int64(5), agg.Views)
	assert.Equal(t, int64(1), agg.CartAdds)
	assert.Equal(t, int64(8), agg.TotalActions)
	// 3*2 + 2*1 + 1*5
	assert.Equal(t, int64(13), agg.WeightedScore)
}

func TestComputeLeaderboard_Ordering(t *testing.T) {
	rows := []LeadRow{
		{UserID: "low", Views: 10},                // score 10
		{UserID: "tie_a", Purchases: 10},          // score 30
		{UserID: "tie_b", Views: 10, CartAdds: 10}, // score 30
	}

	got := ComputeLeaderboard(rows)
	require.Len(t, got, 3)

	// the tied pair may appear in either relative order but must both rank
	// above the low scorer
	assert.Equal(t, int64(30), got[0].WeightedScore)
	assert.Equal(t, int64(30), got[1].WeightedScore)
	assert.Equal(t, "low", got[2].UserID)
}

func TestComputeLeaderboard_Deterministic(t *testing.T) {
	rows := []LeadRow{
		{UserID: "b", Purchases: 1},
		{UserID: "a", Purchases: 1},
		{UserID: "c", Purchases: 1},
	}

	first := ComputeLeaderboard(rows)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeLeaderboard(rows))
	}
	// stable sort keeps input emission order for ties
	assert.Equal(t, "b", first[0].UserID)
	assert.Equal(t, "a", first[1].UserID)
	assert.Equal(t, "c", first[2].UserID)
}

func TestComputeLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, ComputeLeaderboard(nil))
}

func TestAudienceEntry_FillDefaults(t *testing.T) {
	e := AudienceEntry{UserID: "u1", Email: "u1@example.com", ProductID: "p1"}
	e.FillDefaults("https://cdn.example.com/default.jpg")

	assert.Equal(t, "Your Selected Product", e.ProductName)
	assert.Equal(t, "https://cdn.example.com/default.jpg", e.ProductImage)
	assert.NotEmpty(t, e.ProductDescription)

	full := AudienceEntry{ProductName: "Mug", ProductImage: "img", ProductDescription: "desc"}
	full.FillDefaults("other")
	assert.Equal(t, "Mug", full.ProductName)
	assert.Equal(t, "img", full.ProductImage)
	assert.Equal(t, "desc", full.ProductDescription)
}
