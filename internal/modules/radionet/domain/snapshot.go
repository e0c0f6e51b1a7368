package domain

import (
	"maps"
	"slices"
)

// Snapshot is an immutable view of the station collections at refresh time.
type Snapshot struct {
	localStations    []Station
	topStations      []Station
	favoriteStations []Station
	genres           map[string][]Station
}

// SnapshotData holds the collections used to build a Snapshot.
type SnapshotData struct {
	LocalStations    []Station
	TopStations      []Station
	FavoriteStations []Station
	Genres           map[string][]Station
}

// NewSnapshot copies the given collections into a new Snapshot.
func NewSnapshot(data SnapshotData) Snapshot {
	genres := make(map[string][]Station, len(data.Genres))
	for name, stations := range data.Genres {
		genres[name] = slices.Clone(stations)
	}

	return Snapshot{
		localStations:    slices.Clone(data.LocalStations),
		topStations:      slices.Clone(data.TopStations),
		favoriteStations: slices.Clone(data.FavoriteStations),
		genres:           genres,
	}
}

// Stations returns the stations of a station category.
// CategoryGenres has no flat station list and returns nil.
func (s Snapshot) Stations(c Category) []Station {
	switch c {
	case CategoryLocalStations:
		return slices.Clone(s.localStations)
	case CategoryTopStations:
		return slices.Clone(s.topStations)
	case CategoryFavorites:
		return slices.Clone(s.favoriteStations)
	default:
		return nil
	}
}

// GenreNames returns the genre names in sorted order.
func (s Snapshot) GenreNames() []string {
	return slices.Sorted(maps.Keys(s.genres))
}

// GenreStations returns the stations of a genre and whether the genre exists.
func (s Snapshot) GenreStations(name string) ([]Station, bool) {
	stations, ok := s.genres[name]
	return slices.Clone(stations), ok
}

// IsEmpty reports whether the category has nothing to list.
func (s Snapshot) IsEmpty(c Category) bool {
	switch c {
	case CategoryLocalStations:
		return len(s.localStations) == 0
	case CategoryTopStations:
		return len(s.topStations) == 0
	case CategoryFavorites:
		return len(s.favoriteStations) == 0
	case CategoryGenres:
		return len(s.genres) == 0
	default:
		return true
	}
}
