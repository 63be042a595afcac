// Package hub implements the replication hub (spec §4.5): a TCP listener
// that dispatches each connection by its one-line handshake to either the
// bidirectional "main" command stream or a "get" payload-request channel.
package hub

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	l "github.com/sirupsen/logrus"

	"gitlab.com/musicdb/musicdb/src/internal/command"
)

var log *l.Entry = l.WithFields(l.Fields{"cmp": "hub"})

// GetHandler serves one "get" connection's line-oriented payload-request
// protocol (spec §4.6). It owns the connection for as long as the client
// keeps it open. Supplied by internal/cache so hub has no import on it.
type GetHandler func(ctx context.Context, conn net.Conn)

// Hub owns the TCP listener and the live set of main-connection subscribers.
type Hub struct {
	State       *command.State
	Broadcaster *command.Broadcaster
	GetHandler  GetHandler

	mu       sync.Mutex
	stopping bool
}

// New creates a Hub over an already-constructed command.State and
// Broadcaster (both also used directly by the owning cmd/musicdb-server
// for local playback control).
func New(st *command.State, b *command.Broadcaster, get GetHandler) *Hub {
	return &Hub{State: st, Broadcaster: b, GetHandler: get}
}

// Run listens on addr until ctx is cancelled (spec §4.5 accept loop),
// following the teacher's Run(ctx, wg) goroutine shape
// (internal/server/server.go).
func (h *Hub) Run(ctx context.Context, wg *sync.WaitGroup, addr string) error {
	defer wg.Done()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "cannot listen on %q", addr)
	}
	log.WithFields(l.Fields{"addr": addr}).Info("listening for connections")

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		h.stopping = true
		h.mu.Unlock()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			h.mu.Lock()
			stopping := h.stopping
			h.mu.Unlock()
			if stopping {
				log.Trace("listener closed, stopping accept loop")
				return nil
			}
			log.WithError(err).Error("accept failed")
			continue
		}
		go h.handleConn(ctx, conn)
	}
}

// handleConn reads the one-line role handshake and dispatches (spec §4.5:
// "a client opens a connection, sends a one-line handshake selecting a
// role").
func (h *Hub) handleConn(ctx context.Context, conn net.Conn) {
	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	if err != nil {
		log.WithError(err).Debug("connection closed before handshake")
		_ = conn.Close()
		return
	}
	role := strings.TrimSpace(line)

	connLog := log.WithFields(l.Fields{"conn": uuid.New().String(), "role": role})
	switch role {
	case "main":
		connLog.Info("main connection established")
		h.handleMain(ctx, conn, r)
	case "get":
		connLog.Info("get connection established")
		if h.GetHandler != nil {
			h.GetHandler(ctx, conn)
		} else {
			_ = conn.Close()
		}
	default:
		connLog.Warnf("unrecognised handshake role %q", role)
		_ = conn.Close()
	}
}
