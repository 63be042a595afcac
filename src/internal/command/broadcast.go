package command

import (
	"bytes"
	"io"
	"sync"

	"github.com/google/uuid"
	l "github.com/sirupsen/logrus"
)

var log = l.WithFields(l.Fields{"cmp": "command"})

// SubscriberKind discriminates the three ways a subscriber can receive
// broadcast commands (spec §4.5 UpdateEndpoint: byte-sink, channel,
// callback).
type SubscriberKind uint8

const (
	SubscriberBytes SubscriberKind = iota
	SubscriberChannel
	SubscriberCallback
)

type subscriber struct {
	id       uuid.UUID
	kind     SubscriberKind
	sink     io.Writer
	ch       chan<- Command
	callback func(Command)
}

// Broadcaster fans a Command out to every registered subscriber (spec §4.5).
// Callers are expected to hold the owning catalog.Store's Mutex around both
// registration and Broadcast, the same way Database's single-threaded
// update_endpoints walk in broadcast_update never races with apply_command;
// the internal mutex here only protects the subscriber slice itself from
// internal/hub's accept-loop goroutine registering a new connection
// concurrently with an in-flight broadcast.
type Broadcaster struct {
	mu   sync.Mutex
	subs []subscriber
}

func NewBroadcaster() *Broadcaster { return &Broadcaster{} }

// SubscribeBytes registers a raw byte sink (spec: the main-connection socket
// writer) and returns an id that can be passed to Unsubscribe.
func (b *Broadcaster) SubscribeBytes(w io.Writer) uuid.UUID {
	id := uuid.New()
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, kind: SubscriberBytes, sink: w})
	b.mu.Unlock()
	return id
}

// SubscribeChannel registers a buffered channel subscriber. A full channel
// is treated as a dead subscriber and dropped on the next broadcast.
func (b *Broadcaster) SubscribeChannel(ch chan<- Command) uuid.UUID {
	id := uuid.New()
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, kind: SubscriberChannel, ch: ch})
	b.mu.Unlock()
	return id
}

// SubscribeCallback registers an in-process callback, invoked synchronously
// from Broadcast.
func (b *Broadcaster) SubscribeCallback(fn func(Command)) uuid.UUID {
	id := uuid.New()
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, kind: SubscriberCallback, callback: fn})
	b.mu.Unlock()
	return id
}

// Unsubscribe removes a previously registered subscriber. A no-op if id is
// unknown (already removed, e.g. by a failed write).
func (b *Broadcaster) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Broadcast fans cmd out to every subscriber, encoding it at most once for
// all byte-sink subscribers put together (spec §4.5 lazy-encode-once
// broadcast). A subscriber whose sink write fails, or whose channel is
// full, is dropped — mirroring broadcast_update's "couldn't write, assume
// the connection is gone" handling.
func (b *Broadcaster) Broadcast(cmd Command) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var encoded []byte
	var dead []int
	for i := range b.subs {
		s := &b.subs[i]
		switch s.kind {
		case SubscriberBytes:
			if encoded == nil {
				var buf bytes.Buffer
				if err := cmd.ToBytes(&buf); err != nil {
					log.WithError(err).Error("cannot encode command for broadcast")
					return
				}
				encoded = buf.Bytes()
			}
			if _, err := s.sink.Write(encoded); err != nil {
				dead = append(dead, i)
			}
		case SubscriberChannel:
			select {
			case s.ch <- cmd:
			default:
				dead = append(dead, i)
			}
		case SubscriberCallback:
			s.callback(cmd)
		}
	}
	if len(dead) > 0 {
		log.Infof("closing %d dead subscriber(s), %d still active", len(dead), len(b.subs)-len(dead))
		for i := len(dead) - 1; i >= 0; i-- {
			idx := dead[i]
			b.subs = append(b.subs[:idx], b.subs[idx+1:]...)
		}
	}
}
