package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// LibraryService maps the radionet URI namespace onto stations from a StationSource.
type LibraryService struct {
	source ports.StationSource
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(source ports.StationSource) *LibraryService {
	return &LibraryService{
		source: source,
	}
}

// Root returns the library root directory.
func (s *LibraryService) Root() domain.Ref {
	return domain.RootRef()
}

// Lookup resolves a station URI to a single track.
// ok is false for URIs outside the radionet scheme. URIs that do not address
// a station yield an empty list.
func (s *LibraryService) Lookup(
	ctx context.Context,
	uri string,
) ([]domain.Track, bool, error) {
	parsed, err := domain.ParseURI(uri)
	switch {
	case errors.Is(err, domain.ErrForeignScheme):
		return nil, false, nil
	case errors.Is(err, domain.ErrMalformedURI):
		slog.Debug("lookup of malformed uri", "uri", uri)
		return []domain.Track{}, true, nil
	case err != nil:
		return nil, true, err
	}

	var station domain.Station
	switch parsed.Kind {
	case domain.URIStation:
		station, err = s.source.StationByID(ctx, parsed.StationID)
	case domain.URIStationByName:
		station, err = s.source.StationByName(ctx, parsed.StationName)
	default:
		return []domain.Track{}, true, nil
	}
	if err != nil {
		return nil, true, err
	}

	return []domain.Track{domain.StationToTrack(station)}, true, nil
}

// Browse lists the references below a URI. The station source is refreshed
// before every listing. Unknown URIs yield an empty list.
func (s *LibraryService) Browse(ctx context.Context, uri string) ([]domain.Ref, error) {
	snapshot, err := s.source.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := domain.ParseURI(uri)
	if err != nil {
		slog.Debug("unknown uri", "uri", uri, "error", err)
		return []domain.Ref{}, nil
	}

	switch parsed.Kind {
	case domain.URIRoot:
		return rootRefs(snapshot), nil

	case domain.URICategory:
		if parsed.Category == domain.CategoryGenres {
			return genreRefs(snapshot), nil
		}
		return domain.StationRefs(snapshot.Stations(parsed.Category)), nil

	case domain.URIGenre:
		stations, ok := snapshot.GenreStations(parsed.Genre)
		if !ok {
			slog.Debug("unknown genre", "genre", parsed.Genre)
		}
		return domain.StationRefs(stations), nil

	default:
		slog.Debug("uri is not browsable", "uri", uri, "kind", parsed.Kind)
		return []domain.Ref{}, nil
	}
}

// Search runs a free-text search over the "any" query terms.
// Other query fields, uris and exact are not supported and ignored.
func (s *LibraryService) Search(
	ctx context.Context,
	query domain.Query,
	_ []string,
	_ bool,
) (domain.SearchResult, error) {
	terms := query.Terms()
	if len(terms) == 0 {
		return domain.SearchResult{Tracks: []domain.Track{}}, nil
	}

	stations, err := s.source.Search(ctx, strings.Join(terms, " "))
	if err != nil {
		return domain.SearchResult{}, err
	}

	tracks := make([]domain.Track, 0, len(stations))
	for _, station := range stations {
		tracks = append(tracks, domain.StationToSearchTrack(station))
	}

	return domain.SearchResult{Tracks: tracks}, nil
}

func rootRefs(snapshot domain.Snapshot) []domain.Ref {
	refs := make([]domain.Ref, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		if snapshot.IsEmpty(category) {
			continue
		}
		refs = append(refs, domain.DirectoryRef(domain.CategoryURI(category), category.DisplayName()))
	}
	return refs
}

func genreRefs(snapshot domain.Snapshot) []domain.Ref {
	names := snapshot.GenreNames()
	refs := make([]domain.Ref, 0, len(names))
	for _, name := range names {
		refs = append(refs, domain.DirectoryRef(domain.GenreURI(name), name))
	}
	domain.SortRefs(refs)
	return refs
}

// Ensure LibraryService implements ports.LibraryProvider.
var _ ports.LibraryProvider = (*LibraryService)(nil)
