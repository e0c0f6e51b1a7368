package domain

// Category identifies a browsable collection of stations.
type Category string

const (
	CategoryLocalStations Category = "localstations"
	CategoryTopStations   Category = "top100"
	CategoryFavorites     Category = "favorites"
	CategoryGenres        Category = "genres"
)

// Categories lists the categories in the order they appear at the library root.
var Categories = []Category{
	CategoryLocalStations,
	CategoryTopStations,
	CategoryFavorites,
	CategoryGenres,
}

// ParseCategory converts a URI segment to a Category.
func ParseCategory(segment string) (Category, bool) {
	switch Category(segment) {
	case CategoryLocalStations, CategoryTopStations, CategoryFavorites, CategoryGenres:
		return Category(segment), true
	default:
		return "", false
	}
}

// DisplayName returns the name shown for the category directory.
func (c Category) DisplayName() string {
	switch c {
	case CategoryLocalStations:
		return "Local stations"
	case CategoryTopStations:
		return "Top 100"
	case CategoryFavorites:
		return "Favorites"
	case CategoryGenres:
		return "Genres"
	default:
		return string(c)
	}
}
