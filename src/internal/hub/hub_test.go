package hub

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/command"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

func newTestHub() (*Hub, *catalog.Store) {
	store := catalog.NewStore("/music")
	q := queue.NewFolder("root", nil)
	playing := false
	st := &command.State{Store: store, Queue: &q, Playing: &playing}
	return New(st, command.NewBroadcaster(), nil), store
}

func TestHandleMainSendsInitSequence(t *testing.T) {
	h, _ := newTestHub()
	server, client := net.Pipe()
	defer client.Close()

	go func() {
		r := bufio.NewReader(server)
		h.handleMain(context.Background(), server, r)
	}()

	r := bufio.NewReader(client)
	sync, err := command.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, command.KindSyncDatabase, sync.Kind)

	qu, err := command.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, command.KindQueueUpdate, qu.Kind)

	setDir, err := command.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, command.KindSetLibraryDirectory, setDir.Kind)
	require.Equal(t, "/music", setDir.LibraryDirectory)

	done, err := command.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, command.KindInitComplete, done.Kind)
}

func TestHandleMainRelaysAppliedCommands(t *testing.T) {
	h, store := newTestHub()
	server, client := net.Pipe()
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		r := bufio.NewReader(server)
		h.handleMain(ctx, server, r)
	}()

	r := bufio.NewReader(client)
	for i := 0; i < 4; i++ {
		_, err := command.FromBytes(r)
		require.NoError(t, err)
	}

	require.NoError(t, command.Resume().ToBytes(client))

	// The connection is a registered subscriber, so the server relays the
	// command back before applying it; net.Pipe is unbuffered, so this read
	// is what lets the broadcast (and then the apply) complete.
	relayed, err := command.FromBytes(r)
	require.NoError(t, err)
	require.Equal(t, command.KindResume, relayed.Kind)

	deadline := time.After(time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for Resume to be applied")
		default:
		}
		store.Mutex.Lock()
		playing := *h.State.Playing
		store.Mutex.Unlock()
		if playing {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHandleConnDispatchesByRole(t *testing.T) {
	h, _ := newTestHub()
	gotGet := make(chan struct{}, 1)
	h.GetHandler = func(ctx context.Context, conn net.Conn) {
		gotGet <- struct{}{}
		conn.Close()
	}

	server, client := net.Pipe()
	go h.handleConn(context.Background(), server)

	_, err := client.Write([]byte("get\n"))
	require.NoError(t, err)

	select {
	case <-gotGet:
	case <-time.After(time.Second):
		t.Fatal("get handler was not invoked")
	}
}
