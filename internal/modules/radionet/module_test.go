package radionet

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/radionet/internal/bot"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RADIONET_API_URL", "RADIONET_PAGE_SIZE", "RADIONET_TIMEOUT",
		"RADIONET_FAVORITES", "LAVALINK_ADDRESS", "LAVALINK_PASSWORD",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	m := &RadionetModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.config.APIURL != "https://api.radio.net/info/v2" {
		t.Errorf("APIURL = %q", m.config.APIURL)
	}
	if m.config.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", m.config.PageSize)
	}
	if m.config.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", m.config.Timeout)
	}
	if m.config.PlaybackEnabled() {
		t.Error("playback should be disabled without Lavalink")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RADIONET_FAVORITES", "Radio Bob, Jazz FM ,")
	t.Setenv("RADIONET_GENRES", "Jazz,Rock")
	t.Setenv("RADIONET_PAGE_SIZE", "25")
	t.Setenv("LAVALINK_ADDRESS", "localhost:2333")
	t.Setenv("LAVALINK_PASSWORD", "youshallnotpass")

	m := &RadionetModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rc := m.config.radioNetConfig()
	if len(rc.Favorites) != 2 || rc.Favorites[0] != "Radio Bob" || rc.Favorites[1] != "Jazz FM" {
		t.Errorf("Favorites = %q, want [Radio Bob Jazz FM]", rc.Favorites)
	}
	if len(rc.Genres) != 2 {
		t.Errorf("Genres = %q, want 2 entries", rc.Genres)
	}
	if rc.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", rc.PageSize)
	}
	if !m.config.PlaybackEnabled() {
		t.Error("playback should be enabled with Lavalink configured")
	}
}

func TestLoadConfig_InvalidPageSize(t *testing.T) {
	t.Setenv("RADIONET_PAGE_SIZE", "many")

	m := &RadionetModule{}
	if err := m.LoadConfig(); err == nil {
		t.Error("expected error for invalid page size, got nil")
	}
}

func TestRadionetModule_InitWithoutSession(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/topstations":
			_, _ = w.Write([]byte(`{"categories":[{"matches":[{"id":2177,"name":"Radio Bob"}]}]}`))
		default:
			_, _ = w.Write([]byte(`{"categories":[]}`))
		}
	}))
	t.Cleanup(api.Close)

	t.Setenv("RADIONET_API_URL", api.URL)
	t.Setenv("RADIONET_HTTP_ADDRESS", "")

	m := &RadionetModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := m.Init(bot.ModuleDependencies{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Shutdown() })

	if m.Name() != "radionet" {
		t.Errorf("Name() = %q", m.Name())
	}
	if cmds := m.Commands(); len(cmds) != 1 || cmds[0].Name != "radio" {
		t.Errorf("Commands() = %v, want [radio]", cmds)
	}
	if len(m.EventHandlers()) != 3 {
		t.Errorf("expected 3 event handlers, got %d", len(m.EventHandlers()))
	}

	handler, ok := m.CommandHandlers()["radio"]
	if !ok {
		t.Fatal("expected radio handler")
	}

	r := &bot.MockResponder{}
	err := handler(nil, radioInteraction("browse"), r)
	if err != nil {
		t.Fatalf("browse error = %v", err)
	}
	desc := r.LastResponse.Data.Embeds[0].Description
	if !strings.Contains(desc, "Top 100") || strings.Contains(desc, "Local stations") {
		t.Errorf("root listing = %q, want only Top 100", desc)
	}

	r = &bot.MockResponder{}
	if err := handler(nil, radioInteraction("stop"), r); err != nil {
		t.Fatalf("stop error = %v", err)
	}
	if desc := r.LastResponse.Data.Embeds[0].Description; desc != "Playback is not configured." {
		t.Errorf("stop description = %q", desc)
	}
}

func radioInteraction(sub string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "1",
			Member:  &discordgo.Member{User: &discordgo.User{ID: "2"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "radio",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: sub, Type: discordgo.ApplicationCommandOptionSubCommand},
				},
			},
		},
	}
}
