package contracts

import (
	"context"

	"github.com/betpilot/tipster/pkg/models"
)

// OddsProvider defines the interface for fetching odds from external vendors.
// A stable interface so the rest of the system never sees vendor specifics.
type OddsProvider interface {
	// GetOdds retrieves featured-market fixtures for one sport within the
	// commence-time window selected by opts.Days. Failures are returned as
	// the typed errors defined by the adapter (NotAvailable, RateLimited,
	// ConfigurationError, Timeout, Upstream).
	GetOdds(ctx context.Context, sportID string, opts models.GetOddsOptions) ([]models.Fixture, error)

	// GetMultipleSportsOdds fans out GetOdds per sport in parallel and waits
	// for all of them. A failed sport resolves to an empty slice in the
	// result map; one failure never fails the batch.
	GetMultipleSportsOdds(ctx context.Context, sportIDs []string, opts models.GetOddsOptions) map[string][]models.Fixture

	// GetRateLimits returns the most recently observed upstream quota.
	GetRateLimits() models.RateLimits
}
