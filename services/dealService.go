package services

import (
	"sort"
	"time"

	"github.com/t4thick/cs120-food-truck/models"
)

// FailOpenExpiry controls what happens when a deal's expiry string does not
// parse: true keeps the deal running (the historical behavior, which quietly
// extends it forever), false retires it. Operators can flip this at startup.
var FailOpenExpiry = true

// DealExpired reports whether the deal's expiry has passed. The expiry field
// is tried as a full RFC3339 timestamp first, then as a plain date.
func DealExpired(deal models.Deal, now time.Time) bool {
	if deal.Expires_at == "" {
		return false
	}

	expiry, err := time.Parse(time.RFC3339, deal.Expires_at)
	if err != nil {
		expiry, err = time.Parse("2006-01-02", deal.Expires_at)
	}
	if err != nil {
		return !FailOpenExpiry
	}
	return !expiry.After(now)
}

// ActiveDeals filters to deals whose active flag is set and whose expiry (if
// any) is still in the future, newest created first.
func ActiveDeals(deals []models.Deal, now time.Time) []models.Deal {
	active := []models.Deal{}
	for _, deal := range deals {
		if deal.Active && !DealExpired(deal, now) {
			active = append(active, deal)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Created_at.After(active[j].Created_at)
	})
	return active
}
