// Package server accepts client connections and runs one command loop per
// connection over the newline-delimited text protocol.
//
// The transport is deliberately thin: read a line, hand it to the command
// executor, write the reply block followed by a blank line. All protocol
// semantics live in internal/command; all shared state lives in the injected
// store and player.
package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dunelark/tunecast/internal/command"
	"github.com/dunelark/tunecast/internal/player"
	"github.com/dunelark/tunecast/internal/shared"
	"github.com/dunelark/tunecast/internal/store"
)

// Server owns the listener and the per-connection goroutines.
type Server struct {
	addr   string
	limits shared.LimitsConfig
	store  store.Store
	player player.Player
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
}

// New creates a Server for the given configuration and collaborators.
func New(cfg *shared.Config, st store.Store, pl player.Player, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   cfg.Server.Addr(),
		limits: cfg.Limits,
		store:  st,
		player: pl,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		conns:  map[net.Conn]struct{}{},
	}
}

// ListenAndServe listens on the configured address and serves until
// [Server.Shutdown] is called. It returns [shared.ErrServerClosed] after a
// clean shutdown.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener, spawning one command loop per
// connection. A failed connection affects only itself.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return shared.ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return shared.ErrServerClosed
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// Addr returns the bound listener address, usable once Serve has started.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting connections, closes the listener and waits for
// in-flight command loops to drain.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	s.cancel()
	var err error
	if listener != nil {
		err = listener.Close()
	}

	// Idle connections block on their next read; close them so the command
	// loops drain instead of waiting for clients to hang up.
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("server stopped")
	return err
}

// handleConn runs the command loop for one client: a fresh session, a fresh
// executor and a per-connection rate limiter. Transport errors end this loop
// and nothing else.
func (s *Server) handleConn(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	session := command.NewSession()
	logger := shared.WithLogger(s.logger, "conn_id", session.ID(), "remote", conn.RemoteAddr().String())
	executor := command.NewExecutor(s.store, s.player, session, logger)
	limiter := newCommandLimiter(s.limits)

	logger.Info("client connected")
	defer logger.Info("client disconnected")

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if err := limiter.Wait(s.ctx); err != nil {
			return
		}

		reply := executor.Execute(command.Parse(scanner.Text()))
		if _, err := fmt.Fprint(conn, frameReply(reply)); err != nil {
			logger.Error("failed to write reply", "err", err)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("connection read failed", "err", err)
	}
}

// frameReply terminates a reply block so clients can read multi-line replies
// line by line: every reply ends with a newline and a blank line.
func frameReply(reply string) string {
	return strings.TrimRight(reply, "\n") + "\n\n"
}
