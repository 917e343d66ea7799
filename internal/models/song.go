package models

import (
	"fmt"
	"strings"
	"sync/atomic"
)

const (
	// PerformerSeparator joins the names of collaborating performers inside
	// the performer half of a song's full name.
	PerformerSeparator = " ft. "

	// TitleSeparator splits the performer half from the title half of a
	// song's full name and of a library file name.
	TitleSeparator = " - "
)

// Song is a single catalogue entry.
//
// The (title, performers) pair is the song's identity and is immutable after
// construction. The rating counts successful play commands and is stored
// atomically so concurrent readers (search, top) never race play events.
type Song struct {
	title      string
	performers []string
	fullName   string
	rating     atomic.Int64
}

// NewSong creates a Song from the raw performer string (performers joined by
// [PerformerSeparator]) and a title.
func NewSong(performers, title string) *Song {
	return &Song{
		title:      title,
		performers: strings.Split(performers, PerformerSeparator),
		fullName:   performers + TitleSeparator + title,
	}
}

// ParseFullName rebuilds a Song from its full name.
//
// A full name without a [TitleSeparator] is treated as a bare title with no
// performers, so records persisted by earlier versions still load.
func ParseFullName(fullName string) *Song {
	performers, title, found := strings.Cut(fullName, TitleSeparator)
	if !found {
		return &Song{title: fullName, fullName: fullName}
	}
	return NewSong(performers, title)
}

// Title returns the song title.
func (s *Song) Title() string { return s.title }

// Performers returns the names of the song's performers in full-name order.
func (s *Song) Performers() []string {
	out := make([]string, len(s.performers))
	copy(out, s.performers)
	return out
}

// FullName returns the "performers - title" form that identifies the song in
// commands, playlists and the rating file.
func (s *Song) FullName() string { return s.fullName }

// Rating returns the current play count.
func (s *Song) Rating() int { return int(s.rating.Load()) }

// IncrementRating records one play. Identity is unaffected.
func (s *Song) IncrementRating() { s.rating.Add(1) }

// SetRating overwrites the play count, used when merging persisted ratings at
// catalogue load time.
func (s *Song) SetRating(rating int) { s.rating.Store(int64(rating)) }

// Equal reports whether other names the same song, ignoring rating.
func (s *Song) Equal(other *Song) bool {
	return other != nil && s.fullName == other.fullName
}

func (s *Song) String() string {
	return fmt.Sprintf("Song{title: %s, performers: [%s]}", s.title, strings.Join(s.performers, ", "))
}
