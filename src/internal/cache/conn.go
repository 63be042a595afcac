package cache

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
)

// Handler serves "get" connections (spec §4.6/§6 Get TCP protocol). It
// implements internal/hub's GetHandler signature so the composition root can
// wire h.Hub.GetHandler = handler.Handle without internal/hub importing
// internal/cache.
type Handler struct {
	Store       *catalog.Store
	Covers      *CoverCache
	CustomFiles string // root directory for "custom-file"; empty disables the verb
}

func NewHandler(store *catalog.Store, covers *CoverCache, customFiles string) *Handler {
	return &Handler{Store: store, Covers: covers, CustomFiles: customFiles}
}

// Handle serves one get connection until it errors or closes. Half-duplex:
// one request line in, one response, repeat (spec §4.6: "no pipelining").
func (h *Handler) Handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		req := DecodeLine(strings.TrimRight(line, "\n"))
		parts := strings.SplitN(req, "\n", 2)
		verb := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		if err := h.dispatch(conn, verb, arg); err != nil {
			log.WithError(err).Debug("get connection closing")
			return
		}
	}
}

func (h *Handler) dispatch(conn net.Conn, verb, arg string) error {
	switch verb {
	case VerbCoverBytes:
		id, err := catalog.CoverIDFromString(arg)
		if err != nil {
			return writeError(conn, "no cover")
		}
		cover, ok := h.Store.Cover(id)
		if !ok {
			return writeError(conn, "no cover")
		}
		data, ok := h.Covers.CoverBytesWait(h.Store, cover)
		if !ok {
			return writeError(conn, "no data")
		}
		return writePayload(conn, data)

	case VerbSongFile:
		id, err := catalog.SongIDFromString(arg)
		if err != nil {
			return writeError(conn, "no data")
		}
		song, ok := h.Store.Song(id)
		if !ok {
			return writeError(conn, "no data")
		}
		data, ok := SongBytesWait(h.Store, song)
		if !ok {
			return writeError(conn, "no data")
		}
		return writePayload(conn, data)

	case VerbCustomFile:
		if h.CustomFiles == "" {
			return writeError(conn, "no data")
		}
		data, err := readCustomFile(h.CustomFiles, arg)
		if err != nil {
			log.WithError(err).Debugf("custom-file request for %q rejected", arg)
			return writeError(conn, "no data")
		}
		return writePayload(conn, data)

	default:
		return writeError(conn, "no data")
	}
}

// readCustomFile resolves rel under root and rejects any path that escapes
// it (spec §4.6: "rejected if the path escapes the root").
func readCustomFile(root, rel string) ([]byte, error) {
	full := filepath.Join(root, rel)
	cleanRoot := filepath.Clean(root)
	if full != cleanRoot && !strings.HasPrefix(full, cleanRoot+string(filepath.Separator)) {
		return nil, fmt.Errorf("path %q escapes custom-files root", rel)
	}
	return os.ReadFile(full)
}

func writeError(conn net.Conn, msg string) error {
	_, err := conn.Write([]byte(EncodeLine(msg) + "\n"))
	return err
}

func writePayload(conn net.Conn, data []byte) error {
	if _, err := fmt.Fprintf(conn, "len: %d\n", len(data)); err != nil {
		return err
	}
	_, err := conn.Write(data)
	return err
}
