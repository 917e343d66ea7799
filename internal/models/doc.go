// Package models defines the domain entities of the music catalogue.
//
// The package contains three value types:
//   - [Song] : A catalogue entry derived from an audio file name. Identity is
//     the immutable (title, performers) key; the play-count rating is a
//     separate mutable field that never participates in identity.
//   - [Playlist] : A named, ordered set of songs with idempotent membership.
//   - [User] : A registered account holding an email and a one-way password digest.
//
// Songs carry a full name of the form "performer1 ft. performer2 - title".
// [ParseFullName] reverses that encoding so playlists and ratings persisted by
// full name can be rehydrated without consulting the song library on disk.
package models
