package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dunelark/tunecast/internal/models"
	"github.com/dunelark/tunecast/internal/shared"
	"github.com/dunelark/tunecast/internal/store"
)

type nopPlayer struct{}

func (nopPlayer) Play(*models.Song) {}
func (nopPlayer) Stop() error       { return shared.ErrNotPlaying }

func startServer(t *testing.T) (*Server, string) {
	t.Helper()

	library := shared.LibraryConfig{
		SongsDir: filepath.Join(t.TempDir(), "songs"),
		DataDir:  t.TempDir(),
	}
	logger := shared.NewLogger(io.Discard)
	catalogue := store.NewFileStore(library, logger)
	catalogue.AddSong(models.NewSong("ABBA", "Waterloo"))

	cfg := shared.DefaultConfig()
	srv := New(cfg, catalogue, nopPlayer{}, logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(listener) }()
	t.Cleanup(func() {
		if err := srv.Shutdown(); err != nil {
			t.Errorf("shutdown failed: %v", err)
		}
		select {
		case err := <-done:
			if !errors.Is(err, shared.ErrServerClosed) {
				t.Errorf("Serve returned %v, want ErrServerClosed", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return after Shutdown")
		}
	})

	return srv, listener.Addr().String()
}

// client speaks the newline protocol: one line out, one reply block in,
// terminated by a blank line.
type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialClient(t *testing.T, addr string) *client {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return &client{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *client) send(t *testing.T, line string) string {
	t.Helper()
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var block []string
	for {
		reply, err := c.reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		reply = strings.TrimRight(reply, "\n")
		if reply == "" {
			return strings.Join(block, "\n")
		}
		block = append(block, reply)
	}
}

func TestServer(t *testing.T) {
	t.Run("full session over the wire", func(t *testing.T) {
		_, addr := startServer(t)
		c := dialClient(t, addr)

		if got := c.send(t, "register a@x.com pw"); got != "User a@x.com successfully registered" {
			t.Errorf("unexpected reply: %q", got)
		}
		if got := c.send(t, "login a@x.com pw"); got != "User a@x.com successfully logged in" {
			t.Errorf("unexpected reply: %q", got)
		}
		if got := c.send(t, "search Waterloo"); !strings.Contains(got, "Waterloo") {
			t.Errorf("unexpected reply: %q", got)
		}
		if got := c.send(t, "create-playlist mix"); got != "Playlist mix successfully created" {
			t.Errorf("unexpected reply: %q", got)
		}
		if got := c.send(t, "add-song-to mix ABBA - Waterloo"); got != "Song ABBA - Waterloo successfully added to playlist mix" {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("sessions are isolated per connection", func(t *testing.T) {
		_, addr := startServer(t)
		first := dialClient(t, addr)
		second := dialClient(t, addr)

		first.send(t, "register a@x.com pw")
		first.send(t, "login a@x.com pw")

		if got := second.send(t, "search Waterloo"); got != "You are not logged in" {
			t.Errorf("second connection must not inherit auth, got %q", got)
		}
	})

	t.Run("multi line replies are framed by a blank line", func(t *testing.T) {
		_, addr := startServer(t)
		c := dialClient(t, addr)

		got := c.send(t, "man")
		if !strings.Contains(got, "Tunecast manual") || !strings.Contains(got, "play-playlist") {
			t.Errorf("unexpected manual block: %q", got)
		}
	})

	t.Run("quit is not a server command", func(t *testing.T) {
		_, addr := startServer(t)
		c := dialClient(t, addr)

		if got := c.send(t, "quit"); got != "Unknown command" {
			t.Errorf("the quit sentinel is client-local, server replied %q", got)
		}
	})

	t.Run("a dropped connection leaves others serving", func(t *testing.T) {
		_, addr := startServer(t)
		dropped := dialClient(t, addr)
		kept := dialClient(t, addr)

		dropped.send(t, "man")
		dropped.conn.Close()

		if got := kept.send(t, "man"); !strings.Contains(got, "Tunecast manual") {
			t.Errorf("surviving connection broken: %q", got)
		}
	})
}
