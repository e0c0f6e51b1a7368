package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

type playbackFixture struct {
	source     *mockStationSource
	repo       *mockRepository
	voice      *mockVoiceConnection
	voiceState *mockVoiceStateProvider
	resolver   *mockStreamResolver
	player     *mockAudioPlayer
	service    *PlaybackService
}

var (
	testGuildID   = snowflake.ID(1)
	testUserID    = snowflake.ID(2)
	testChannelID = snowflake.ID(3)
)

func newPlaybackFixture() *playbackFixture {
	f := &playbackFixture{
		source: newMockStationSource(),
		repo:   newMockRepository(),
		voice:  &mockVoiceConnection{},
		voiceState: &mockVoiceStateProvider{
			channels: map[snowflake.ID]snowflake.ID{testUserID: testChannelID},
		},
		resolver: &mockStreamResolver{
			stream: &ports.StreamInfo{Encoded: "encoded-stream", IsStream: true},
		},
		player: &mockAudioPlayer{},
	}
	f.source.addStation(mockStation(2177, "Radio Bob"))
	f.service = NewPlaybackService(
		f.repo,
		NewLibraryService(f.source),
		f.voice,
		f.voiceState,
		f.resolver,
		f.player,
	)
	return f
}

func TestPlaybackService_Play(t *testing.T) {
	f := newPlaybackFixture()

	output, err := f.service.Play(context.Background(), PlayInput{
		GuildID:       testGuildID,
		UserID:        testUserID,
		URI:           "radionet:station:2177",
		RequesterName: "tester",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Track.Name != "Radio Bob" {
		t.Errorf("expected track %q, got %q", "Radio Bob", output.Track.Name)
	}
	if output.VoiceChannelID != testChannelID {
		t.Errorf("expected channel %d, got %d", testChannelID, output.VoiceChannelID)
	}
	if len(f.resolver.urls) != 1 || f.resolver.urls[0] != "http://stream.example.com/Radio Bob" {
		t.Errorf("expected stream URL to be resolved, got %q", f.resolver.urls)
	}
	if len(f.voice.joined) != 1 || f.voice.joined[0] != testChannelID {
		t.Errorf("expected join of channel %d, got %v", testChannelID, f.voice.joined)
	}
	if len(f.player.played) != 1 || f.player.played[0] != "encoded-stream" {
		t.Errorf("expected encoded stream to be played, got %q", f.player.played)
	}

	np := f.repo.Get(testGuildID)
	if np == nil {
		t.Fatal("expected now playing to be saved")
	}
	if np.StationURI != "radionet:station:2177" {
		t.Errorf("expected station URI %q, got %q", "radionet:station:2177", np.StationURI)
	}
	if np.RequesterName != "tester" {
		t.Errorf("expected requester %q, got %q", "tester", np.RequesterName)
	}
}

func TestPlaybackService_Play_SameChannelDoesNotRejoin(t *testing.T) {
	f := newPlaybackFixture()
	f.source.addStation(mockStation(1, "Other"))
	ctx := context.Background()

	for _, uri := range []string{"radionet:station:2177", "radionet:station:1"} {
		if _, err := f.service.Play(ctx, PlayInput{
			GuildID: testGuildID,
			UserID:  testUserID,
			URI:     uri,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(f.voice.joined) != 1 {
		t.Errorf("expected 1 join, got %d", len(f.voice.joined))
	}
	if len(f.player.played) != 2 {
		t.Errorf("expected 2 plays, got %d", len(f.player.played))
	}
	if got := f.repo.Get(testGuildID).Track.Name; got != "Other" {
		t.Errorf("expected now playing %q, got %q", "Other", got)
	}
}

func TestPlaybackService_Play_Errors(t *testing.T) {
	joinErr := errors.New("join failed")
	playErr := errors.New("play failed")
	resolveErr := errors.New("lavalink down")

	tests := []struct {
		name    string
		uri     string
		setup   func(*playbackFixture)
		wantErr error
	}{
		{
			name:    "foreign scheme",
			uri:     "spotify:track:1",
			wantErr: ErrNotAStation,
		},
		{
			name:    "category is not a station",
			uri:     "radionet:category:top100",
			wantErr: ErrNotAStation,
		},
		{
			name:    "unknown station",
			uri:     "radionet:station:9",
			wantErr: domain.ErrStationNotFound,
		},
		{
			name: "user not in voice",
			uri:  "radionet:station:2177",
			setup: func(f *playbackFixture) {
				f.voiceState.channels = map[snowflake.ID]snowflake.ID{}
			},
			wantErr: ErrUserNotInVoice,
		},
		{
			name: "resolver error",
			uri:  "radionet:station:2177",
			setup: func(f *playbackFixture) {
				f.resolver.err = resolveErr
			},
			wantErr: resolveErr,
		},
		{
			name: "nothing playable",
			uri:  "radionet:station:2177",
			setup: func(f *playbackFixture) {
				f.resolver.stream = nil
			},
			wantErr: ErrStreamUnavailable,
		},
		{
			name: "join error",
			uri:  "radionet:station:2177",
			setup: func(f *playbackFixture) {
				f.voice.joinErr = joinErr
			},
			wantErr: joinErr,
		},
		{
			name: "play error",
			uri:  "radionet:station:2177",
			setup: func(f *playbackFixture) {
				f.player.playErr = playErr
			},
			wantErr: playErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlaybackFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.service.Play(context.Background(), PlayInput{
				GuildID: testGuildID,
				UserID:  testUserID,
				URI:     tt.uri,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if f.repo.Get(testGuildID) != nil {
				t.Error("expected nothing to be saved on failure")
			}
		})
	}
}

func TestPlaybackService_Stop(t *testing.T) {
	f := newPlaybackFixture()
	ctx := context.Background()

	if _, err := f.service.Play(ctx, PlayInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		URI:     "radionet:station:2177",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.service.Stop(ctx, StopInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.player.stopped) != 1 {
		t.Errorf("expected 1 stop, got %d", len(f.player.stopped))
	}
	if len(f.voice.left) != 1 {
		t.Errorf("expected 1 leave, got %d", len(f.voice.left))
	}
	if f.repo.Get(testGuildID) != nil {
		t.Error("expected now playing to be deleted")
	}
}

func TestPlaybackService_Stop_NotPlaying(t *testing.T) {
	f := newPlaybackFixture()

	err := f.service.Stop(context.Background(), StopInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected error %v, got %v", ErrNotPlaying, err)
	}
	if len(f.player.stopped) != 0 {
		t.Error("expected player not to be stopped")
	}
}

func TestPlaybackService_NowPlaying(t *testing.T) {
	f := newPlaybackFixture()
	ctx := context.Background()

	if _, err := f.service.NowPlaying(ctx, testGuildID); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected error %v, got %v", ErrNotPlaying, err)
	}

	if _, err := f.service.Play(ctx, PlayInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		URI:     "radionet:station:2177",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	np, err := f.service.NowPlaying(ctx, testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if np.Track.Name != "Radio Bob" {
		t.Errorf("expected %q, got %q", "Radio Bob", np.Track.Name)
	}
}

func TestPlaybackService_OnStreamEnded(t *testing.T) {
	tests := []struct {
		reason    domain.StreamEndReason
		wantClear bool
	}{
		{domain.StreamEndFinished, true},
		{domain.StreamEndLoadFailed, true},
		{domain.StreamEndCleanup, true},
		{domain.StreamEndStopped, false},
		{domain.StreamEndReplaced, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			f := newPlaybackFixture()
			ctx := context.Background()

			if _, err := f.service.Play(ctx, PlayInput{
				GuildID: testGuildID,
				UserID:  testUserID,
				URI:     "radionet:station:2177",
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			f.service.OnStreamEnded(ctx, domain.StreamEndedEvent{
				GuildID: testGuildID,
				Reason:  tt.reason,
			})

			cleared := f.repo.Get(testGuildID) == nil
			if cleared != tt.wantClear {
				t.Errorf("record cleared = %v, want %v", cleared, tt.wantClear)
			}
			if left := len(f.voice.left) == 1; left != tt.wantClear {
				t.Errorf("left voice = %v, want %v", left, tt.wantClear)
			}
		})
	}
}

func TestPlaybackService_OnStreamEnded_NothingPlaying(t *testing.T) {
	f := newPlaybackFixture()

	f.service.OnStreamEnded(context.Background(), domain.StreamEndedEvent{
		GuildID: testGuildID,
		Reason:  domain.StreamEndFinished,
	})

	if len(f.voice.left) != 0 {
		t.Errorf("expected no leave, got %d", len(f.voice.left))
	}
}

func TestPlaybackService_OnVoiceChannelChanged_LeftRejoinsOnNextPlay(t *testing.T) {
	f := newPlaybackFixture()
	ctx := context.Background()
	input := PlayInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		URI:     "radionet:station:2177",
	}

	if _, err := f.service.Play(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The bot was kicked from voice.
	f.service.OnVoiceChannelChanged(ctx, domain.VoiceChannelChangedEvent{GuildID: testGuildID})

	if _, err := f.service.NowPlaying(ctx, testGuildID); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected error %v after disconnect, got %v", ErrNotPlaying, err)
	}

	if _, err := f.service.Play(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.voice.joined) != 2 {
		t.Errorf("expected play after disconnect to join again, got %d joins", len(f.voice.joined))
	}
}

func TestPlaybackService_OnVoiceChannelChanged_Moved(t *testing.T) {
	f := newPlaybackFixture()
	ctx := context.Background()

	if _, err := f.service.Play(ctx, PlayInput{
		GuildID: testGuildID,
		UserID:  testUserID,
		URI:     "radionet:station:2177",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	movedTo := snowflake.ID(99)
	f.service.OnVoiceChannelChanged(ctx, domain.VoiceChannelChangedEvent{
		GuildID:   testGuildID,
		ChannelID: movedTo,
	})

	np := f.repo.Get(testGuildID)
	if np == nil {
		t.Fatal("expected record to survive a move")
	}
	if np.VoiceChannelID != movedTo {
		t.Errorf("VoiceChannelID = %v, want %v", np.VoiceChannelID, movedTo)
	}
}
