package models

import (
	"fmt"
	"strings"
	"sync"
)

// Playlist is a named collection of songs with set membership.
//
// Insertion order is retained so renderings are stable, but membership is
// keyed by song full name: adding a song twice is a no-op. Membership is
// guarded internally because playlists are rendered by one connection while
// another may be adding songs.
type Playlist struct {
	name string

	mu      sync.RWMutex
	songs   []*Song
	members map[string]struct{}
}

// NewPlaylist creates an empty playlist with the given name.
func NewPlaylist(name string) *Playlist {
	return &Playlist{name: name, members: map[string]struct{}{}}
}

// Name returns the playlist's unique name.
func (p *Playlist) Name() string { return p.name }

// Songs returns the playlist's songs in insertion order.
func (p *Playlist) Songs() []*Song {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Song, len(p.songs))
	copy(out, p.songs)
	return out
}

// Empty reports whether the playlist has no songs.
func (p *Playlist) Empty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.songs) == 0
}

// AddSong appends song unless it is already a member, reporting whether the
// membership changed.
func (p *Playlist) AddSong(song *Song) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.members[song.FullName()]; ok {
		return false
	}
	p.members[song.FullName()] = struct{}{}
	p.songs = append(p.songs, song)
	return true
}

// Contains reports whether a song with the given full name is a member.
func (p *Playlist) Contains(fullName string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.members[fullName]
	return ok
}

func (p *Playlist) String() string {
	songs := p.Songs()
	rendered := make([]string, len(songs))
	for i, song := range songs {
		rendered[i] = song.String()
	}
	return fmt.Sprintf("Playlist{name: %s, songs: [%s]}", p.name, strings.Join(rendered, ", "))
}
