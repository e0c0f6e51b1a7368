package domain

import (
	"slices"
	"strings"
)

// StationToRef maps a station to the lightweight reference used in listings.
func StationToRef(s Station) Ref {
	return TrackRef(s.URI(), s.Name)
}

// StationToTrack maps a station to a fully populated, playable track.
func StationToTrack(s Station) Track {
	artist := Artist{Name: s.Name}

	return Track{
		URI:     s.StreamURL,
		Name:    s.Name,
		Genre:   s.Genres,
		Comment: s.Description,
		Album: Album{
			URI:  s.URI().String(),
			Name: s.Location(),
		},
		Artists: []Artist{artist},
	}
}

// StationToSearchTrack maps a station to a track built from its reference only.
// The track URI is the station URI; it must be looked up before playback.
func StationToSearchTrack(s Station) Track {
	ref := StationToRef(s)

	return Track{
		URI:     ref.URI,
		Name:    ref.Name,
		Album:   Album{URI: ref.URI, Name: ref.Name},
		Artists: []Artist{{URI: ref.URI, Name: ref.Name}},
	}
}

// StationRefs maps stations to references sorted by name.
func StationRefs(stations []Station) []Ref {
	refs := make([]Ref, 0, len(stations))
	for _, s := range stations {
		refs = append(refs, StationToRef(s))
	}
	SortRefs(refs)
	return refs
}

// SortRefs sorts references by name using byte-wise comparison.
func SortRefs(refs []Ref) {
	slices.SortStableFunc(refs, func(a, b Ref) int {
		return strings.Compare(a.Name, b.Name)
	})
}
