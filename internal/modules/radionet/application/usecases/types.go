package usecases

import (
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// Re-export domain types for presentation layer use.
// This allows presentation to depend only on usecases without importing domain directly.

// Ref is an alias for domain.Ref.
type Ref = domain.Ref

// Track is an alias for domain.Track.
type Track = domain.Track

// Query is an alias for domain.Query.
type Query = domain.Query

// NowPlaying is an alias for domain.NowPlaying.
type NowPlaying = domain.NowPlaying

// LibraryProvider is an alias for ports.LibraryProvider.
type LibraryProvider = ports.LibraryProvider
