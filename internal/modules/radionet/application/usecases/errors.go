package usecases

import "errors"

// Errors for the radionet module.
var (
	// ErrNotAStation is returned when a URI does not address a single station.
	ErrNotAStation = errors.New("not a radionet station")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrNotPlaying is returned when no station is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrStreamUnavailable is returned when the station stream cannot be loaded.
	ErrStreamUnavailable = errors.New("station stream is unavailable")

	// ErrPlaybackDisabled is returned when no audio backend is configured.
	ErrPlaybackDisabled = errors.New("playback is not configured")
)
