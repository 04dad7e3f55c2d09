package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t4thick/cs120-food-truck/models"
)

func deal(title, expiresAt string, active bool, createdAt time.Time) models.Deal {
	return models.Deal{
		Deal_id:    title,
		Title:      &title,
		Discount:   strPtr("10% off"),
		Created_by: "senior@truck.com",
		Created_at: createdAt,
		Expires_at: expiresAt,
		Active:     active,
	}
}

func TestActiveDeals(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	base := now.Add(-48 * time.Hour)

	deals := []models.Deal{
		deal("inactive flag", "", false, base),
		deal("no expiry", "", true, base.Add(1*time.Hour)),
		deal("future date-only expiry", "2025-07-01", true, base.Add(2*time.Hour)),
		deal("past date-only expiry", "2025-06-01", true, base.Add(3*time.Hour)),
		deal("future timestamp expiry", "2025-06-15T18:00:00Z", true, base.Add(4*time.Hour)),
		deal("past timestamp expiry", "2025-06-15T09:00:00Z", true, base.Add(5*time.Hour)),
	}

	active := ActiveDeals(deals, now)

	titles := make([]string, 0, len(active))
	for _, d := range active {
		titles = append(titles, *d.Title)
	}
	// newest created first
	assert.Equal(t, []string{"future timestamp expiry", "future date-only expiry", "no expiry"}, titles)
}

func TestDealExpired_FailOpenPolicy(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	garbled := deal("garbled expiry", "next tuesday-ish", true, now)

	require.True(t, FailOpenExpiry, "fail-open is the default")
	assert.False(t, DealExpired(garbled, now))

	FailOpenExpiry = false
	defer func() { FailOpenExpiry = true }()
	assert.True(t, DealExpired(garbled, now))
}

func TestDealExpired_ExpiryExactlyNow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	d := deal("on the boundary", "2025-06-15T12:00:00Z", true, now)
	assert.True(t, DealExpired(d, now))
}
