package ports

import (
	"context"

	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// LibraryProvider is the contract a host uses to browse and play the library.
type LibraryProvider interface {
	// Root returns the directory registered as the library root.
	Root() domain.Ref

	// Lookup resolves a URI to playable tracks.
	// ok is false when the URI does not belong to this library.
	Lookup(ctx context.Context, uri string) (tracks []domain.Track, ok bool, err error)

	// Browse lists the directory and track references below a URI.
	Browse(ctx context.Context, uri string) ([]domain.Ref, error)

	// Search returns tracks matching the query.
	Search(ctx context.Context, query domain.Query, uris []string, exact bool) (domain.SearchResult, error)
}
