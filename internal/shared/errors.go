package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalogue errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrDuplicateEntry   = fmt.Errorf("entry already exists")

	// Playback errors
	ErrNotPlaying = fmt.Errorf("no song playing")

	// Transport errors
	ErrServerClosed = fmt.Errorf("server closed")
)
