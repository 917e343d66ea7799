// package store provides the shared music catalogue: users, songs and
// playlists, guarded per collection and persisted synchronously to flat
// record files.
package store

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunelark/tunecast/internal/models"
	"github.com/dunelark/tunecast/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Store defines catalogue access for command handlers.
//
// Mutating operations persist before returning. Persistence failures are
// logged and the in-memory mutation stands; durability is best effort by
// design, callers never see a write error.
type Store interface {
	AddUser(email, password string) bool
	DeleteUser(email string)
	UserExists(email, password string) bool

	AddSong(song *models.Song)
	Songs() []*models.Song
	SongByFullName(fullName string) *models.Song
	UpdateSongRating(song *models.Song)

	AddPlaylist(playlist *models.Playlist) bool
	AddSongToPlaylist(playlist *models.Playlist, song *models.Song) bool
	PlaylistByName(name string) *models.Playlist
}

// FileStore implements [Store] backed by the durable layout described in
// [shared.LibraryConfig]: a users table, an aggregate rating file and one
// file per playlist, each fully rewritten on every mutation.
//
// Users, songs and playlists are independent collections with independent
// locks; a check-then-insert and its file write share one critical section so
// concurrent registrations cannot interleave on disk.
type FileStore struct {
	library shared.LibraryConfig
	logger  *log.Logger

	usersMu sync.RWMutex
	users   map[string]models.User

	songsMu   sync.RWMutex
	songs     []*models.Song
	songIndex map[string]*models.Song

	playlistsMu sync.RWMutex
	playlists   map[string]*models.Playlist
}

// NewFileStore creates a FileStore and loads the catalogue: songs from the
// library directory, then persisted ratings, users and playlists. Any load
// failure is logged and leaves that collection empty rather than failing
// startup.
func NewFileStore(library shared.LibraryConfig, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	s := &FileStore{
		library:   library,
		logger:    logger,
		users:     map[string]models.User{},
		songIndex: map[string]*models.Song{},
		playlists: map[string]*models.Playlist{},
	}
	s.loadSongs()
	s.loadRatings()
	s.loadUsers()
	s.loadPlaylists()
	return s
}

// AddUser registers an account, reporting false when the email is taken. The
// password is stored only as a bcrypt digest.
func (s *FileStore) AddUser(email, password string) bool {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, ok := s.users[email]; ok {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("could not hash password", "email", email, "err", err)
		return false
	}

	s.users[email] = models.NewUser(email, string(hash))
	s.writeUsers()
	return true
}

// DeleteUser removes an account. Deleting an absent email is a no-op.
func (s *FileStore) DeleteUser(email string) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	delete(s.users, email)
	s.writeUsers()
}

// UserExists reports whether an account with this email exists and the
// supplied password matches its stored digest.
func (s *FileStore) UserExists(email, password string) bool {
	s.usersMu.RLock()
	user, ok := s.users[email]
	s.usersMu.RUnlock()

	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)) == nil
}

// AddSong appends a song to the catalogue unless one with the same identity
// is already present. Used by the bootstrap loaders and as a seed hook.
func (s *FileStore) AddSong(song *models.Song) {
	s.songsMu.Lock()
	defer s.songsMu.Unlock()
	s.addSongLocked(song)
}

func (s *FileStore) addSongLocked(song *models.Song) *models.Song {
	if existing, ok := s.songIndex[song.FullName()]; ok {
		return existing
	}
	s.songIndex[song.FullName()] = song
	s.songs = append(s.songs, song)
	return song
}

// Songs returns the catalogue in encounter order.
func (s *FileStore) Songs() []*models.Song {
	s.songsMu.RLock()
	defer s.songsMu.RUnlock()
	out := make([]*models.Song, len(s.songs))
	copy(out, s.songs)
	return out
}

// SongByFullName returns the song with the given full name, or nil.
func (s *FileStore) SongByFullName(fullName string) *models.Song {
	s.songsMu.RLock()
	defer s.songsMu.RUnlock()
	return s.songIndex[fullName]
}

// UpdateSongRating records one play of song and persists the rating file.
func (s *FileStore) UpdateSongRating(song *models.Song) {
	s.songsMu.Lock()
	defer s.songsMu.Unlock()

	song.IncrementRating()
	s.writeRatings()
}

// AddPlaylist registers a playlist, reporting false when the name is taken.
func (s *FileStore) AddPlaylist(playlist *models.Playlist) bool {
	s.playlistsMu.Lock()
	defer s.playlistsMu.Unlock()

	if _, ok := s.playlists[playlist.Name()]; ok {
		return false
	}
	s.playlists[playlist.Name()] = playlist
	s.writePlaylist(playlist)
	return true
}

// AddSongToPlaylist adds song to playlist, reporting false when it is already
// a member. The membership write and the file write share the critical
// section, so the idempotency check is atomic across connections.
func (s *FileStore) AddSongToPlaylist(playlist *models.Playlist, song *models.Song) bool {
	s.playlistsMu.Lock()
	defer s.playlistsMu.Unlock()

	if !playlist.AddSong(song) {
		return false
	}
	s.writePlaylist(playlist)
	return true
}

// PlaylistByName returns the playlist with the given name, or nil.
func (s *FileStore) PlaylistByName(name string) *models.Playlist {
	s.playlistsMu.RLock()
	defer s.playlistsMu.RUnlock()
	return s.playlists[name]
}
