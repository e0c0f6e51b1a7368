package domain

import "errors"

// ErrStationNotFound is returned when a station cannot be found by ID or name.
var ErrStationNotFound = errors.New("station not found")

// Station is a read-only view of a Radio.net station.
type Station struct {
	ID          int64
	Name        string
	Description string
	Continent   string
	Country     string
	City        string
	Genres      string
	StreamURL   string
}

// URI returns the addressing URI of the station.
func (s Station) URI() URI {
	return StationURI(s.ID)
}

// Location formats the station description and origin for use as an album name.
func (s Station) Location() string {
	return s.Description + " / " + s.Continent + " / " + s.Country + " - " + s.City
}
