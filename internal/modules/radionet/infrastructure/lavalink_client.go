package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

// pendingJoin tracks the voice events a JoinChannel call is waiting for.
type pendingJoin struct {
	mu        sync.Mutex
	gotState  bool
	gotServer bool
	ready     chan struct{}
}

func newPendingJoin() *pendingJoin {
	return &pendingJoin{ready: make(chan struct{})}
}

// mark records a received event and closes ready once both have arrived.
func (p *pendingJoin) mark(isVoiceState bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if isVoiceState {
		p.gotState = true
	} else {
		p.gotServer = true
	}

	if p.gotState && p.gotServer {
		select {
		case <-p.ready:
		default:
			close(p.ready)
		}
	}
}

// voiceUpdate collects a guild's VoiceStateUpdate and VoiceServerUpdate so
// they reach Lavalink together and in order, whatever order Discord sends them.
type voiceUpdate struct {
	mu sync.Mutex

	hasState  bool
	channelID *snowflake.ID
	sessionID string

	hasServer bool
	token     string
	endpoint  string
}

func (u *voiceUpdate) setState(channelID *snowflake.ID, sessionID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.hasState = true
	u.channelID = channelID
	u.sessionID = sessionID

	return u.hasState && u.hasServer
}

func (u *voiceUpdate) setServer(token, endpoint string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.hasServer = true
	u.token = token
	u.endpoint = endpoint

	return u.hasState && u.hasServer
}

// take returns the collected data and resets the update.
func (u *voiceUpdate) take() (channelID *snowflake.ID, sessionID, token, endpoint string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	channelID, sessionID, token, endpoint = u.channelID, u.sessionID, u.token, u.endpoint
	*u = voiceUpdate{}

	return
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
	Secure   bool
}

// LavalinkAdapter streams stations through a Lavalink node using DisGoLink.
type LavalinkAdapter struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	pendingMu sync.Mutex
	pending   map[snowflake.ID]*pendingJoin

	updatesMu sync.Mutex
	updates   map[snowflake.ID]*voiceUpdate

	handlerMu sync.RWMutex
	handler   ports.PlaybackEventHandler
}

// NewLavalinkAdapter connects to the Lavalink node.
// The session must be open so that the bot user is known.
func NewLavalinkAdapter(
	ctx context.Context,
	session *discordgo.Session,
	config LavalinkConfig,
) (*LavalinkAdapter, error) {
	if session.State == nil || session.State.User == nil {
		return nil, fmt.Errorf("discord session is not ready")
	}

	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	adapter := &LavalinkAdapter{
		session: session,
		botID:   botID,
		pending: make(map[snowflake.ID]*pendingJoin),
		updates: make(map[snowflake.ID]*voiceUpdate),
	}

	adapter.link = disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.onTrackStart),
		disgolink.WithListenerFunc(adapter.onTrackEnd),
		disgolink.WithListenerFunc(adapter.onTrackException),
		disgolink.WithListenerFunc(adapter.onTrackStuck),
	)

	node, err := adapter.link.AddNode(ctx, disgolink.NodeConfig{
		Name:     "radionet",
		Address:  config.Address,
		Password: config.Password,
		Secure:   config.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return adapter, nil
}

// SetEventHandler sets the receiver of stream end and voice channel events.
func (c *LavalinkAdapter) SetEventHandler(handler ports.PlaybackEventHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()

	c.handler = handler
}

func (c *LavalinkAdapter) eventHandler() ports.PlaybackEventHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()

	return c.handler
}

// Close disconnects from all Lavalink nodes.
func (c *LavalinkAdapter) Close() {
	c.link.Close()
}

// JoinChannel connects to a voice channel and waits until Lavalink has
// received both voice events.
func (c *LavalinkAdapter) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error {
	pending := newPendingJoin()

	c.pendingMu.Lock()
	c.pending[guildID] = pending
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, guildID)
		c.pendingMu.Unlock()
	}()

	err := c.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	select {
	case <-pending.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-time.After(voiceConnectionTimeout):
		return fmt.Errorf("timeout waiting for voice connection")
	}
}

// LeaveChannel destroys the guild's player and disconnects from voice.
func (c *LavalinkAdapter) LeaveChannel(ctx context.Context, guildID snowflake.ID) error {
	if player := c.link.ExistingPlayer(guildID); player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	err := c.session.ChannelVoiceJoinManual(guildID.String(), "", false, false)
	if err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play starts an encoded track, replacing the current one.
func (c *LavalinkAdapter) Play(ctx context.Context, guildID snowflake.ID, encoded string) error {
	player := c.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithEncodedTrack(encoded)); err != nil {
		return fmt.Errorf("failed to play stream: %w", err)
	}

	return nil
}

// Stop stops the current playback.
func (c *LavalinkAdapter) Stop(ctx context.Context, guildID snowflake.ID) error {
	player := c.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	return nil
}

// ResolveStream loads a station stream URL on the best available node.
func (c *LavalinkAdapter) ResolveStream(ctx context.Context, url string) (*ports.StreamInfo, error) {
	node := c.link.BestNode()
	if node == nil {
		return nil, fmt.Errorf("no available Lavalink node")
	}

	result, err := node.LoadTracks(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load stream: %w", err)
	}

	return streamFromLoadResult(result)
}

// streamFromLoadResult picks the first track of a load result.
func streamFromLoadResult(result *lavalink.LoadResult) (*ports.StreamInfo, error) {
	var track lavalink.Track
	switch data := result.Data.(type) {
	case lavalink.Track:
		track = data
	case lavalink.Search:
		if len(data) == 0 {
			return nil, nil
		}
		track = data[0]
	case lavalink.Playlist:
		if len(data.Tracks) == 0 {
			return nil, nil
		}
		track = data.Tracks[0]
	case lavalink.Exception:
		return nil, fmt.Errorf("lavalink: %s", data.Message)
	default:
		return nil, nil
	}

	return &ports.StreamInfo{
		Encoded:  track.Encoded,
		Title:    track.Info.Title,
		IsStream: track.Info.IsStream,
	}, nil
}

// OnVoiceServerUpdate forwards a Discord voice server update.
func (c *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	update := c.voiceUpdate(guildID)
	if update.setServer(event.Token, event.Endpoint) {
		c.forward(guildID, update)
	}

	c.markPending(guildID, false)
}

// OnVoiceStateUpdate forwards the bot's own Discord voice state updates.
func (c *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != c.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// An empty channel means the bot left; there is no server update to wait for.
	if event.ChannelID == "" {
		c.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		c.updatesMu.Lock()
		delete(c.updates, guildID)
		c.updatesMu.Unlock()

		c.voiceChannelChanged(guildID, 0)
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	update := c.voiceUpdate(guildID)
	if update.setState(&channelID, event.SessionID) {
		c.forward(guildID, update)
	}

	c.markPending(guildID, true)
	c.voiceChannelChanged(guildID, channelID)
}

func (c *LavalinkAdapter) voiceChannelChanged(guildID, channelID snowflake.ID) {
	if handler := c.eventHandler(); handler != nil {
		handler.OnVoiceChannelChanged(context.Background(), domain.VoiceChannelChangedEvent{
			GuildID:   guildID,
			ChannelID: channelID,
		})
	}
}

func (c *LavalinkAdapter) voiceUpdate(guildID snowflake.ID) *voiceUpdate {
	c.updatesMu.Lock()
	defer c.updatesMu.Unlock()

	update, ok := c.updates[guildID]
	if !ok {
		update = &voiceUpdate{}
		c.updates[guildID] = update
	}
	return update
}

func (c *LavalinkAdapter) markPending(guildID snowflake.ID, isVoiceState bool) {
	c.pendingMu.Lock()
	pending := c.pending[guildID]
	c.pendingMu.Unlock()

	if pending != nil {
		pending.mark(isVoiceState)
	}
}

func (c *LavalinkAdapter) forward(guildID snowflake.ID, update *voiceUpdate) {
	channelID, sessionID, token, endpoint := update.take()

	slog.Debug("forwarding voice update to Lavalink", "guild", guildID, "channel", channelID)

	c.link.OnVoiceStateUpdate(context.Background(), guildID, channelID, sessionID)
	c.link.OnVoiceServerUpdate(context.Background(), guildID, token, endpoint)
}

func (c *LavalinkAdapter) onTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("stream started", "guild", player.GuildID(), "title", event.Track.Info.Title)
}

func (c *LavalinkAdapter) onTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	c.streamEnded(player.GuildID(), event.Reason)
}

func (c *LavalinkAdapter) streamEnded(guildID snowflake.ID, reason lavalink.TrackEndReason) {
	slog.Debug("stream ended", "guild", guildID, "reason", reason)

	if handler := c.eventHandler(); handler != nil {
		handler.OnStreamEnded(context.Background(), domain.StreamEndedEvent{
			GuildID: guildID,
			Reason:  convertEndReason(reason),
		})
	}
}

func convertEndReason(reason lavalink.TrackEndReason) domain.StreamEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.StreamEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.StreamEndLoadFailed
	case lavalink.TrackEndReasonReplaced:
		return domain.StreamEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.StreamEndCleanup
	default:
		return domain.StreamEndStopped
	}
}

func (c *LavalinkAdapter) onTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("stream exception", "guild", player.GuildID(), "error", event.Exception.Message)
}

func (c *LavalinkAdapter) onTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("stream stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

// Ensure LavalinkAdapter implements port interfaces.
var (
	_ ports.AudioPlayer     = (*LavalinkAdapter)(nil)
	_ ports.VoiceConnection = (*LavalinkAdapter)(nil)
	_ ports.StreamResolver  = (*LavalinkAdapter)(nil)
)
