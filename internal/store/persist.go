package store

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dunelark/tunecast/internal/models"
)

// Durable record shapes. Each file is a self-contained TOML document that is
// re-encoded in full and rewritten on every mutation, so a reader never sees
// mixed old and new state within one record-set.
type userRecords struct {
	Users map[string]string `toml:"users"`
}

type ratingRecords struct {
	Ratings map[string]int `toml:"ratings"`
}

type playlistRecord struct {
	Name  string   `toml:"name"`
	Songs []string `toml:"songs"`
}

// writeRecord encodes doc and replaces the file at path. Failures are logged,
// never returned: the in-memory state is authoritative and callers have
// already committed their mutation.
func (s *FileStore) writeRecord(path string, doc any) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		s.logger.Error("could not encode record", "path", path, "err", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.logger.Error("could not create data directory", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		s.logger.Error("could not write record", "path", path, "err", err)
	}
}

// writeUsers persists the full users table. Caller holds usersMu.
func (s *FileStore) writeUsers() {
	doc := userRecords{Users: make(map[string]string, len(s.users))}
	for email, user := range s.users {
		doc.Users[email] = user.PasswordHash()
	}
	s.writeRecord(s.library.UsersPath(), doc)
}

// writeRatings persists every song's rating keyed by full name. Caller holds
// songsMu.
func (s *FileStore) writeRatings() {
	doc := ratingRecords{Ratings: make(map[string]int, len(s.songs))}
	for _, song := range s.songs {
		doc.Ratings[song.FullName()] = song.Rating()
	}
	s.writeRecord(s.library.RatingsPath(), doc)
}

// writePlaylist persists one playlist as its own record file. Caller holds
// playlistsMu.
func (s *FileStore) writePlaylist(playlist *models.Playlist) {
	songs := playlist.Songs()
	doc := playlistRecord{Name: playlist.Name(), Songs: make([]string, len(songs))}
	for i, song := range songs {
		doc.Songs[i] = song.FullName()
	}
	s.writeRecord(filepath.Join(s.library.PlaylistsDir(), playlist.Name()+".toml"), doc)
}
