package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Scheme is the URI scheme handled by this library.
const Scheme = "radionet"

const (
	schemePrefix = Scheme + ":"
	separator    = ":"
)

// Path segments.
const (
	segmentRoot        = "root"
	segmentStation     = "station"
	segmentStationPlay = "station_play"
	segmentCategory    = "category"
)

var (
	// ErrForeignScheme is returned when a URI does not use the radionet scheme.
	ErrForeignScheme = errors.New("uri does not use the radionet scheme")

	// ErrMalformedURI is returned when a radionet URI does not match any known shape.
	ErrMalformedURI = errors.New("malformed radionet uri")

	// ErrInvalidStationID is returned when a station URI carries a non-integer ID.
	ErrInvalidStationID = errors.New("invalid station id")
)

// URIKind identifies the variant held by a URI.
type URIKind int

const (
	URIRoot URIKind = iota
	URICategory
	URIGenre
	URIStation
	URIStationByName
)

// String returns the name of the variant.
func (k URIKind) String() string {
	switch k {
	case URIRoot:
		return "root"
	case URICategory:
		return "category"
	case URIGenre:
		return "genre"
	case URIStation:
		return "station"
	case URIStationByName:
		return "station_by_name"
	default:
		return "unknown"
	}
}

// URI is a parsed radionet URI. Only the fields relevant to Kind are set.
type URI struct {
	Kind        URIKind
	Category    Category
	Genre       string
	StationID   int64
	StationName string
}

// RootURI returns the URI of the library root.
func RootURI() URI {
	return URI{Kind: URIRoot}
}

// CategoryURI returns the URI of a category directory.
func CategoryURI(c Category) URI {
	return URI{Kind: URICategory, Category: c}
}

// GenreURI returns the URI listing the stations of a genre.
func GenreURI(name string) URI {
	return URI{Kind: URIGenre, Category: CategoryGenres, Genre: name}
}

// StationURI returns the URI of a station addressed by ID.
func StationURI(id int64) URI {
	return URI{Kind: URIStation, StationID: id}
}

// StationByNameURI returns the legacy URI of a station addressed by name.
func StationByNameURI(name string) URI {
	return URI{Kind: URIStationByName, StationName: name}
}

// String renders the canonical form of the URI.
func (u URI) String() string {
	var segments []string
	switch u.Kind {
	case URIRoot:
		segments = []string{segmentRoot}
	case URICategory:
		segments = []string{segmentCategory, string(u.Category)}
	case URIGenre:
		segments = []string{segmentCategory, string(CategoryGenres), u.Genre}
	case URIStation:
		segments = []string{segmentStation, strconv.FormatInt(u.StationID, 10)}
	case URIStationByName:
		segments = []string{segmentStationPlay, u.StationName}
	}
	return schemePrefix + strings.Join(segments, separator)
}

// SplitURI strips the scheme prefix and splits the remainder into path segments.
// It returns false if the URI does not use the radionet scheme.
// The scheme-only URI "radionet:" yields a single empty segment.
func SplitURI(uri string) ([]string, bool) {
	rest, ok := strings.CutPrefix(uri, schemePrefix)
	if !ok {
		return nil, false
	}
	return strings.Split(rest, separator), true
}

// ParseURI parses a radionet URI into its variant.
func ParseURI(uri string) (URI, error) {
	segments, ok := SplitURI(uri)
	if !ok {
		return URI{}, fmt.Errorf("%w: %q", ErrForeignScheme, uri)
	}

	switch segments[0] {
	case segmentRoot:
		if len(segments) == 1 {
			return RootURI(), nil
		}

	case segmentStation:
		if len(segments) == 2 {
			id, err := strconv.ParseInt(segments[1], 10, 64)
			if err != nil {
				return URI{}, fmt.Errorf("%w %q: %w", ErrInvalidStationID, segments[1], err)
			}
			return StationURI(id), nil
		}

	case segmentStationPlay:
		// Names may contain the separator, keep everything after the first segment.
		if len(segments) >= 2 {
			return StationByNameURI(strings.Join(segments[1:], separator)), nil
		}

	case segmentCategory:
		return parseCategory(uri, segments[1:])
	}

	return URI{}, fmt.Errorf("%w: %q", ErrMalformedURI, uri)
}

func parseCategory(uri string, segments []string) (URI, error) {
	if len(segments) == 0 {
		return URI{}, fmt.Errorf("%w: %q", ErrMalformedURI, uri)
	}

	category, ok := ParseCategory(segments[0])
	if !ok {
		return URI{}, fmt.Errorf("%w: unknown category in %q", ErrMalformedURI, uri)
	}

	if len(segments) == 1 {
		return CategoryURI(category), nil
	}

	if category == CategoryGenres {
		return GenreURI(strings.Join(segments[1:], separator)), nil
	}

	return URI{}, fmt.Errorf("%w: %q", ErrMalformedURI, uri)
}
