package redis

import (
	"context"
	"fmt"
	"strconv"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
)

// DefaultPrefix is the stream key prefix used when none is configured.
const DefaultPrefix = "hfsm:events:"

// StreamSink implements ports.EventSink and ports.EventReader on Redis streams.
// Each machine writes to its own stream named <prefix><machineID>.
type StreamSink struct {
	client *backend.Client
	prefix string
	maxLen int64
}

type Option func(*StreamSink)

// WithPrefix sets the stream key prefix.
func WithPrefix(prefix string) Option {
	return func(s *StreamSink) {
		s.prefix = prefix
	}
}

// WithMaxLen caps each stream at roughly n entries. Zero keeps everything.
func WithMaxLen(n int64) Option {
	return func(s *StreamSink) {
		s.maxLen = n
	}
}

// New creates a new stream sink connected to address.
func New(address, password string, db int, opts ...Option) *StreamSink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new stream sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *StreamSink {
	sink := &StreamSink{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

func (s *StreamSink) key(machineID string) string {
	return s.prefix + machineID
}

// Publish appends one stream entry per event.
func (s *StreamSink) Publish(ctx context.Context, machineID string, entries []events.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, e := range entries {
		pipe.XAdd(ctx, &backend.XAddArgs{
			Stream: s.key(machineID),
			MaxLen: s.maxLen,
			Approx: s.maxLen > 0,
			Values: map[string]any{
				"kind":       string(e.Kind),
				"state":      e.StateName,
				"transition": e.TransitionName,
				"tick":       e.Tick,
				"last_tick":  e.LastTick,
				"repeat":     e.Repeat,
			},
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish events to redis: %w", err)
	}
	return nil
}

// Read returns the events stored in the machine stream, oldest first.
func (s *StreamSink) Read(ctx context.Context, machineID string) ([]events.Entry, error) {
	msgs, err := s.client.XRange(ctx, s.key(machineID), "-", "+").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read events from redis: %w", err)
	}

	out := make([]events.Entry, 0, len(msgs))
	for _, msg := range msgs {
		e, err := decode(msg.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stream entry %s: %w", msg.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Close closes the underlying client.
func (s *StreamSink) Close() error {
	return s.client.Close()
}

func decode(values map[string]any) (events.Entry, error) {
	str := func(k string) string {
		v, _ := values[k].(string)
		return v
	}

	tick, err := strconv.ParseUint(str("tick"), 10, 64)
	if err != nil {
		return events.Entry{}, fmt.Errorf("tick: %w", err)
	}
	lastTick, err := strconv.ParseUint(str("last_tick"), 10, 64)
	if err != nil {
		return events.Entry{}, fmt.Errorf("last_tick: %w", err)
	}
	repeat, err := strconv.Atoi(str("repeat"))
	if err != nil {
		return events.Entry{}, fmt.Errorf("repeat: %w", err)
	}

	return events.Entry{
		Kind:           domain.EventKind(str("kind")),
		StateName:      str("state"),
		TransitionName: str("transition"),
		Tick:           tick,
		LastTick:       lastTick,
		Repeat:         repeat,
	}, nil
}
