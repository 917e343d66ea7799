package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dunelark/tunecast/internal/models"
)

// Bootstrap loaders. Each tolerates a missing or unreadable source by logging
// and leaving its collection empty; the server still starts.

// loadSongs derives the catalogue from the library directory. A file named
// "Foo ft. Bar - Baz.wav" becomes the song "Foo ft. Bar - Baz".
func (s *FileStore) loadSongs() {
	entries, err := os.ReadDir(s.library.SongsDir)
	if err != nil {
		s.logger.Error("could not read songs directory", "dir", s.library.SongsDir, "err", err)
		return
	}

	s.songsMu.Lock()
	defer s.songsMu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		performers, title, found := strings.Cut(stem, models.TitleSeparator)
		if !found {
			s.logger.Warn("skipping library file without performer separator", "file", name)
			continue
		}
		s.addSongLocked(models.NewSong(performers, title))
	}
	s.logger.Info("loaded song library", "songs", len(s.songs))
}

// loadRatings merges the persisted rating file into the catalogue. Ratings
// for songs no longer present in the library still become catalogue entries,
// rebuilt from their full names.
func (s *FileStore) loadRatings() {
	var doc ratingRecords
	if !s.decodeRecord(s.library.RatingsPath(), &doc, "rating") {
		return
	}

	s.songsMu.Lock()
	defer s.songsMu.Unlock()
	for fullName, rating := range doc.Ratings {
		song := s.addSongLocked(models.ParseFullName(fullName))
		song.SetRating(rating)
	}
}

// loadUsers reads the persisted users table.
func (s *FileStore) loadUsers() {
	var doc userRecords
	if !s.decodeRecord(s.library.UsersPath(), &doc, "users") {
		return
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	for email, hash := range doc.Users {
		s.users[email] = models.NewUser(email, hash)
	}
	s.logger.Info("loaded users", "users", len(s.users))
}

// loadPlaylists reads every record file in the playlists directory. Songs are
// resolved against the catalogue by full name so a played playlist touches
// the same entries the search and top commands see; names that no longer
// resolve are rebuilt from the persisted full name.
func (s *FileStore) loadPlaylists() {
	entries, err := os.ReadDir(s.library.PlaylistsDir())
	if err != nil {
		s.logger.Error("could not read playlists directory", "dir", s.library.PlaylistsDir(), "err", err)
		return
	}

	s.playlistsMu.Lock()
	defer s.playlistsMu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		var doc playlistRecord
		path := filepath.Join(s.library.PlaylistsDir(), entry.Name())
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			s.logger.Error("could not decode playlist record", "path", path, "err", err)
			continue
		}
		if doc.Name == "" {
			s.logger.Warn("skipping playlist record without a name", "path", path)
			continue
		}

		playlist := models.NewPlaylist(doc.Name)
		for _, fullName := range doc.Songs {
			song := s.SongByFullName(fullName)
			if song == nil {
				song = models.ParseFullName(fullName)
				s.AddSong(song)
			}
			playlist.AddSong(song)
		}
		s.playlists[doc.Name] = playlist
	}
	s.logger.Info("loaded playlists", "playlists", len(s.playlists))
}

// decodeRecord decodes the TOML record file at path into doc, reporting
// whether the caller should proceed. A missing file is expected on first run
// and only logged.
func (s *FileStore) decodeRecord(path string, doc any, kind string) bool {
	if _, err := toml.DecodeFile(path, doc); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("record file not found, starting empty", "kind", kind, "path", path)
		} else {
			s.logger.Error("could not decode record file", "kind", kind, "path", path, "err", err)
		}
		return false
	}
	return true
}
