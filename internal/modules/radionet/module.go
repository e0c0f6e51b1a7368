package radionet

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sglre6355/radionet/internal/bot"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/usecases"
	"github.com/sglre6355/radionet/internal/modules/radionet/infrastructure"
	"github.com/sglre6355/radionet/internal/modules/radionet/presentation/discord"
	"github.com/sglre6355/radionet/internal/modules/radionet/presentation/httpapi"
)

func init() {
	bot.Register(&RadionetModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*RadionetModule)(nil)

// RadionetModule exposes the Radio.net library through Discord and HTTP.
type RadionetModule struct {
	config          *Config
	library         usecases.LibraryProvider
	commandHandlers *discord.CommandHandlers

	// Set during Init while gateway events may already be arriving.
	autocomplete atomic.Pointer[discord.AutocompleteHandler]
	lavalink     atomic.Pointer[infrastructure.LavalinkAdapter]

	registry *prometheus.Registry
	server   *httpapi.Server
}

// Name returns the module name.
func (m *RadionetModule) Name() string {
	return "radionet"
}

// Commands returns the slash commands for this module.
func (m *RadionetModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *RadionetModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		discord.CommandName: m.commandHandlers.HandleRadio,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *RadionetModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(_ *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			if adapter := m.lavalink.Load(); adapter != nil {
				adapter.OnVoiceServerUpdate(event)
			}
		},
		func(_ *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			if adapter := m.lavalink.Load(); adapter != nil {
				adapter.OnVoiceStateUpdate(event)
			}
		},
		m.handleInteractionCreate,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *RadionetModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *RadionetModule) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := infrastructure.NewRadioNetClient(m.config.radioNetConfig())
	m.library = infrastructure.NewInstrumentedLibrary(
		usecases.NewLibraryService(client),
		infrastructure.NewLibraryMetrics(m.registry),
	)

	playback, err := m.initPlayback(deps.Session)
	if err != nil {
		return err
	}

	m.commandHandlers = discord.NewCommandHandlers(m.library, playback)
	m.autocomplete.Store(discord.NewAutocompleteHandler(m.library))

	if m.config.HTTPAddress != "" {
		m.startServer()
	}

	slog.Info("radionet module initialized",
		"api", m.config.APIURL,
		"playback", playback != nil,
		"http", m.config.HTTPAddress,
	)

	return nil
}

// initPlayback returns nil when no session or Lavalink node is available.
func (m *RadionetModule) initPlayback(session *discordgo.Session) (*usecases.PlaybackService, error) {
	if session == nil {
		slog.Warn("radionet module initialized without session, playback disabled")
		return nil, nil
	}
	if !m.config.PlaybackEnabled() {
		slog.Warn("LAVALINK_ADDRESS or LAVALINK_PASSWORD not set, playback disabled")
		return nil, nil
	}

	adapter, err := infrastructure.NewLavalinkAdapter(
		context.Background(),
		session,
		m.config.lavalinkConfig(),
	)
	if err != nil {
		return nil, err
	}
	m.lavalink.Store(adapter)

	repo := infrastructure.NewMemoryRepository()
	infrastructure.RegisterActiveGuilds(m.registry, repo)

	playback := usecases.NewPlaybackService(
		repo,
		m.library,
		adapter,
		infrastructure.NewVoiceStateProvider(session.State),
		adapter,
		adapter,
	)
	adapter.SetEventHandler(playback)

	return playback, nil
}

func (m *RadionetModule) startServer() {
	m.server = httpapi.NewServer(m.library, m.registry)

	go func(server *httpapi.Server, addr string) {
		if err := server.Start(addr); err != nil {
			slog.Error("http server stopped", "address", addr, "error", err)
		}
	}(m.server, m.config.HTTPAddress)
}

// Shutdown cleans up module resources.
func (m *RadionetModule) Shutdown() error {
	if m.server != nil {
		if err := m.server.Shutdown(); err != nil {
			slog.Warn("failed to shutdown http server", "error", err)
		}
	}

	if adapter := m.lavalink.Swap(nil); adapter != nil {
		adapter.Close()
	}

	return nil
}

func (m *RadionetModule) handleInteractionCreate(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	autocomplete := m.autocomplete.Load()
	if autocomplete == nil {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != discord.CommandName || len(data.Options) == 0 {
		return
	}

	if data.Options[0].Name == "play" {
		responder := bot.NewDiscordResponder(s, i.Interaction)
		if err := autocomplete.HandlePlay(i, responder); err != nil {
			slog.Warn("failed to respond to autocomplete", "error", err)
		}
	}
}
