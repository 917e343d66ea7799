package models

import (
	"strings"
	"testing"
)

func TestSong(t *testing.T) {
	t.Run("performers split on the ft separator", func(t *testing.T) {
		song := NewSong("Queen ft. David Bowie", "Under Pressure")

		performers := song.Performers()
		if len(performers) != 2 || performers[0] != "Queen" || performers[1] != "David Bowie" {
			t.Errorf("unexpected performers: %v", performers)
		}
		if song.FullName() != "Queen ft. David Bowie - Under Pressure" {
			t.Errorf("unexpected full name: %q", song.FullName())
		}
	})

	t.Run("single performer", func(t *testing.T) {
		song := NewSong("ABBA", "Waterloo")

		if len(song.Performers()) != 1 || song.Performers()[0] != "ABBA" {
			t.Errorf("unexpected performers: %v", song.Performers())
		}
	})

	t.Run("rating mutation leaves identity untouched", func(t *testing.T) {
		song := NewSong("ABBA", "Waterloo")
		fullName := song.FullName()
		performers := strings.Join(song.Performers(), ",")

		song.IncrementRating()
		song.IncrementRating()

		if song.Rating() != 2 {
			t.Errorf("expected rating 2, got %d", song.Rating())
		}
		if song.FullName() != fullName || strings.Join(song.Performers(), ",") != performers {
			t.Error("rating mutation changed the identity key")
		}
	})

	t.Run("equality ignores rating", func(t *testing.T) {
		a := NewSong("ABBA", "Waterloo")
		b := NewSong("ABBA", "Waterloo")
		b.SetRating(10)

		if !a.Equal(b) {
			t.Error("songs with equal identity must be equal regardless of rating")
		}
		if a.Equal(NewSong("ABBA", "SOS")) {
			t.Error("different titles must not be equal")
		}
	})

	t.Run("parse full name round trips", func(t *testing.T) {
		song := ParseFullName("Queen ft. David Bowie - Under Pressure")

		if song.Title() != "Under Pressure" {
			t.Errorf("unexpected title: %q", song.Title())
		}
		if len(song.Performers()) != 2 {
			t.Errorf("unexpected performers: %v", song.Performers())
		}
		if !song.Equal(NewSong("Queen ft. David Bowie", "Under Pressure")) {
			t.Error("parsed song must equal a constructed one")
		}
	})

	t.Run("parse tolerates a missing separator", func(t *testing.T) {
		song := ParseFullName("justatitle")

		if song.Title() != "justatitle" || song.FullName() != "justatitle" {
			t.Errorf("unexpected song: %+v", song)
		}
		if len(song.Performers()) != 0 {
			t.Errorf("expected no performers, got %v", song.Performers())
		}
	})
}
