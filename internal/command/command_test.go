package command

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("splits command and arguments", func(t *testing.T) {
		cmd := Parse("login a@x.com secret")

		if cmd.Name != "login" {
			t.Errorf("expected command login, got %q", cmd.Name)
		}
		if len(cmd.Args) != 2 || cmd.Args[0] != "a@x.com" || cmd.Args[1] != "secret" {
			t.Errorf("unexpected args: %v", cmd.Args)
		}
	})

	t.Run("quoted substrings stay one token", func(t *testing.T) {
		cmd := Parse(`add-song-to "road trip" Queen - Bohemian Rhapsody`)

		if cmd.Args[0] != "road trip" {
			t.Errorf("expected quoted token to keep its space, got %q", cmd.Args[0])
		}
		if len(cmd.Args) != 5 {
			t.Errorf("expected 5 args, got %v", cmd.Args)
		}
	})

	t.Run("quotes are stripped from tokens", func(t *testing.T) {
		cmd := Parse(`create-playlist "test"`)

		if cmd.Args[0] != "test" {
			t.Errorf("expected quotes removed, got %q", cmd.Args[0])
		}
	})

	t.Run("embedded newlines are removed", func(t *testing.T) {
		cmd := Parse("top 5\n")

		if cmd.Name != "top" || len(cmd.Args) != 1 || cmd.Args[0] != "5" {
			t.Errorf("unexpected parse: %+v", cmd)
		}
	})

	t.Run("final token emitted without trailing delimiter", func(t *testing.T) {
		cmd := Parse("play Song")

		if len(cmd.Args) != 1 || cmd.Args[0] != "Song" {
			t.Errorf("expected trailing token, got %v", cmd.Args)
		}
	})

	t.Run("consecutive spaces produce empty tokens", func(t *testing.T) {
		cmd := Parse("search  foo")

		if len(cmd.Args) != 2 || cmd.Args[0] != "" || cmd.Args[1] != "foo" {
			t.Errorf("expected empty token preserved, got %v", cmd.Args)
		}
	})

	t.Run("empty input yields empty command name", func(t *testing.T) {
		cmd := Parse("")

		if cmd.Name != "" {
			t.Errorf("expected empty command name, got %q", cmd.Name)
		}
		if len(cmd.Args) != 0 {
			t.Errorf("expected no args, got %v", cmd.Args)
		}
	})

	t.Run("command with no arguments", func(t *testing.T) {
		cmd := Parse("logout")

		if cmd.Name != "logout" || len(cmd.Args) != 0 {
			t.Errorf("unexpected parse: %+v", cmd)
		}
	})
}
