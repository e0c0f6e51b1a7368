package ports

import (
	"context"

	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// StationSource defines the interface for fetching Radio.net stations.
type StationSource interface {
	// Refresh fetches the current station collections.
	Refresh(ctx context.Context) (domain.Snapshot, error)

	// StationByID returns the station with the given ID.
	// Returns domain.ErrStationNotFound if the station does not exist.
	StationByID(ctx context.Context, id int64) (domain.Station, error)

	// StationByName returns the station with the given display name.
	// Returns domain.ErrStationNotFound if no station matches.
	StationByName(ctx context.Context, name string) (domain.Station, error)

	// Search returns the stations matching the free-text query, in relevance order.
	Search(ctx context.Context, text string) ([]domain.Station, error)
}
