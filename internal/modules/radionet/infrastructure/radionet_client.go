package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

const (
	// DefaultRadioNetURL is the base URL of the Radio.net API.
	DefaultRadioNetURL = "https://api.radio.net/info/v2"

	defaultPageSize = 100
	defaultTimeout  = 10 * time.Second

	// maxResponseBytes bounds the size of a decoded API response.
	maxResponseBytes = 4 << 20
)

// statusError is returned for non-2xx API responses.
type statusError struct {
	path       string
	statusCode int
	status     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status from %s: %s", e.path, e.status)
}

// RadioNetConfig contains Radio.net API configuration.
type RadioNetConfig struct {
	BaseURL   string
	APIKey    string
	PageSize  int
	Timeout   time.Duration
	Favorites []string // station names
	Genres    []string
}

// RadioNetClient fetches stations from the Radio.net API.
type RadioNetClient struct {
	cfg    RadioNetConfig
	client *http.Client
}

// NewRadioNetClient creates a new RadioNetClient.
func NewRadioNetClient(cfg RadioNetConfig) *RadioNetClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultRadioNetURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &RadioNetClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// apiStation is a station as returned by the Radio.net API.
type apiStation struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Continent   string   `json:"continent"`
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Genres      []string `json:"genres"`
	StreamURLs  []struct {
		StreamURL string `json:"streamUrl"`
	} `json:"streamUrls"`
}

// apiSearchResult is the envelope of the Radio.net list endpoints.
type apiSearchResult struct {
	TotalCount int `json:"totalCount"`
	Categories []struct {
		Matches []apiStation `json:"matches"`
	} `json:"categories"`
}

func (s apiStation) toDomain() domain.Station {
	var streamURL string
	if len(s.StreamURLs) > 0 {
		streamURL = s.StreamURLs[0].StreamURL
	}

	return domain.Station{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Continent:   s.Continent,
		Country:     s.Country,
		City:        s.City,
		Genres:      strings.Join(s.Genres, ", "),
		StreamURL:   streamURL,
	}
}

func (r apiSearchResult) stations() []domain.Station {
	var stations []domain.Station
	for _, category := range r.Categories {
		for _, match := range category.Matches {
			stations = append(stations, match.toDomain())
		}
	}
	return stations
}

// Refresh fetches local, top, favorite and genre stations.
func (c *RadioNetClient) Refresh(ctx context.Context) (domain.Snapshot, error) {
	local, err := c.list(ctx, "search/localstations", nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to fetch local stations: %w", err)
	}

	top, err := c.list(ctx, "search/topstations", nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to fetch top stations: %w", err)
	}

	favorites := make([]domain.Station, 0, len(c.cfg.Favorites))
	for _, name := range c.cfg.Favorites {
		station, err := c.StationByName(ctx, name)
		if err != nil {
			slog.Warn("failed to resolve favorite station", "name", name, "error", err)
			continue
		}
		favorites = append(favorites, station)
	}

	genres := make(map[string][]domain.Station, len(c.cfg.Genres))
	for _, genre := range c.cfg.Genres {
		stations, err := c.list(ctx, "search/stationsbygenre", url.Values{"genre": {genre}})
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("failed to fetch genre %s: %w", genre, err)
		}
		if len(stations) > 0 {
			genres[genre] = stations
		}
	}

	slog.Debug("refreshed stations",
		"local", len(local),
		"top", len(top),
		"favorites", len(favorites),
		"genres", len(genres),
	)

	return domain.NewSnapshot(domain.SnapshotData{
		LocalStations:    local,
		TopStations:      top,
		FavoriteStations: favorites,
		Genres:           genres,
	}), nil
}

// StationByID fetches the details of a station.
func (c *RadioNetClient) StationByID(ctx context.Context, id int64) (domain.Station, error) {
	var station apiStation
	query := url.Values{"station": {strconv.FormatInt(id, 10)}}
	if err := c.get(ctx, "search/station", query, &station); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.statusCode == http.StatusNotFound {
			return domain.Station{}, fmt.Errorf("%w: %d", domain.ErrStationNotFound, id)
		}
		return domain.Station{}, err
	}
	if station.ID == 0 {
		return domain.Station{}, fmt.Errorf("%w: %d", domain.ErrStationNotFound, id)
	}
	return station.toDomain(), nil
}

// StationByName searches for a station whose name matches case-insensitively
// and fetches its details.
func (c *RadioNetClient) StationByName(ctx context.Context, name string) (domain.Station, error) {
	matches, err := c.Search(ctx, name)
	if err != nil {
		return domain.Station{}, err
	}

	for _, match := range matches {
		if strings.EqualFold(match.Name, name) {
			return c.StationByID(ctx, match.ID)
		}
	}

	return domain.Station{}, fmt.Errorf("%w: %q", domain.ErrStationNotFound, name)
}

// Search returns the stations matching a free-text query.
func (c *RadioNetClient) Search(ctx context.Context, text string) ([]domain.Station, error) {
	return c.list(ctx, "search/stationsonly", url.Values{"query": {text}})
}

func (c *RadioNetClient) list(
	ctx context.Context,
	path string,
	query url.Values,
) ([]domain.Station, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("pageindex", "1")
	query.Set("sizeperpage", strconv.Itoa(c.cfg.PageSize))

	var result apiSearchResult
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}
	return result.stations(), nil
}

func (c *RadioNetClient) get(ctx context.Context, path string, query url.Values, v any) error {
	if c.cfg.APIKey != "" {
		query.Set("apikey", c.cfg.APIKey)
	}
	endpoint := c.cfg.BaseURL + "/" + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{path: path, statusCode: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	return nil
}

// Ensure RadioNetClient implements ports.StationSource.
var _ ports.StationSource = (*RadioNetClient)(nil)
