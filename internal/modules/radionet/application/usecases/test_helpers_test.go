package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

func mockStation(id int64, name string) domain.Station {
	return domain.Station{
		ID:          id,
		Name:        name,
		Description: "Description of " + name,
		Continent:   "Europe",
		Country:     "Germany",
		City:        "Berlin",
		Genres:      "Pop",
		StreamURL:   "http://stream.example.com/" + name,
	}
}

type mockStationSource struct {
	snapshot   domain.Snapshot
	refreshErr error
	stations   map[int64]domain.Station
	byIDErr    error
	byNameErr  error
	results    []domain.Station
	searchErr  error

	refreshCalls int
	searchTexts  []string
	lookedUpIDs  []int64
	lookedUpName []string
}

func newMockStationSource() *mockStationSource {
	return &mockStationSource{
		snapshot: domain.NewSnapshot(domain.SnapshotData{}),
		stations: make(map[int64]domain.Station),
	}
}

func (m *mockStationSource) addStation(s domain.Station) {
	m.stations[s.ID] = s
}

func (m *mockStationSource) Refresh(_ context.Context) (domain.Snapshot, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return domain.Snapshot{}, m.refreshErr
	}
	return m.snapshot, nil
}

func (m *mockStationSource) StationByID(_ context.Context, id int64) (domain.Station, error) {
	m.lookedUpIDs = append(m.lookedUpIDs, id)
	if m.byIDErr != nil {
		return domain.Station{}, m.byIDErr
	}
	station, ok := m.stations[id]
	if !ok {
		return domain.Station{}, domain.ErrStationNotFound
	}
	return station, nil
}

func (m *mockStationSource) StationByName(_ context.Context, name string) (domain.Station, error) {
	m.lookedUpName = append(m.lookedUpName, name)
	if m.byNameErr != nil {
		return domain.Station{}, m.byNameErr
	}
	for _, station := range m.stations {
		if station.Name == name {
			return station, nil
		}
	}
	return domain.Station{}, domain.ErrStationNotFound
}

func (m *mockStationSource) Search(_ context.Context, text string) ([]domain.Station, error) {
	m.searchTexts = append(m.searchTexts, text)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

type mockRepository struct {
	states  map[snowflake.ID]*domain.NowPlaying
	deleted []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		states: make(map[snowflake.ID]*domain.NowPlaying),
	}
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.NowPlaying {
	return m.states[guildID]
}

func (m *mockRepository) Save(np *domain.NowPlaying) {
	m.states[np.GuildID] = np
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.deleted = append(m.deleted, guildID)
	delete(m.states, guildID)
}

type mockAudioPlayer struct {
	playErr error
	stopErr error

	played  []string
	stopped []snowflake.ID
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, encoded string) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, encoded)
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, guildID snowflake.ID) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopped = append(m.stopped, guildID)
	return nil
}

type mockVoiceConnection struct {
	joinErr  error
	leaveErr error

	joined []snowflake.ID
	left   []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joined = append(m.joined, channelID)
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.left = append(m.left, guildID)
	return nil
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.channels[userID], nil
}

type mockStreamResolver struct {
	stream *ports.StreamInfo
	err    error

	urls []string
}

func (m *mockStreamResolver) ResolveStream(_ context.Context, url string) (*ports.StreamInfo, error) {
	m.urls = append(m.urls, url)
	if m.err != nil {
		return nil, m.err
	}
	return m.stream, nil
}
