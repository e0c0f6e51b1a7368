package domain

// RootName is the display name of the library root directory.
const RootName = "Radio.net"

// RefKind distinguishes browsable directories from playable tracks.
type RefKind string

const (
	RefDirectory RefKind = "directory"
	RefTrack     RefKind = "track"
)

// Ref is a lightweight browse listing entry.
type Ref struct {
	URI  string  `json:"uri"`
	Name string  `json:"name"`
	Kind RefKind `json:"type"`
}

// DirectoryRef creates a directory reference.
func DirectoryRef(uri URI, name string) Ref {
	return Ref{URI: uri.String(), Name: name, Kind: RefDirectory}
}

// TrackRef creates a track reference.
func TrackRef(uri URI, name string) Ref {
	return Ref{URI: uri.String(), Name: name, Kind: RefTrack}
}

// RootRef returns the reference registered with the host as the library root.
func RootRef() Ref {
	return DirectoryRef(RootURI(), RootName)
}

// Artist is synthesized from a station.
type Artist struct {
	URI  string `json:"uri,omitempty"`
	Name string `json:"name"`
}

// Album is synthesized from a station.
type Album struct {
	URI  string `json:"uri,omitempty"`
	Name string `json:"name"`
}

// Track is a playable library entry. URI is what the audio backend opens.
type Track struct {
	URI     string   `json:"uri"`
	Name    string   `json:"name"`
	Genre   string   `json:"genre,omitempty"`
	Comment string   `json:"comment,omitempty"`
	Album   Album    `json:"album"`
	Artists []Artist `json:"artists"`
}

// SearchResult holds the tracks matching a search.
type SearchResult struct {
	Tracks []Track `json:"tracks"`
}

// Query is a search query keyed by field. Only the "any" field is used.
type Query map[string][]string

// QueryFieldAny is the free-text query field.
const QueryFieldAny = "any"

// Terms returns the free-text terms of the query.
func (q Query) Terms() []string {
	return q[QueryFieldAny]
}
