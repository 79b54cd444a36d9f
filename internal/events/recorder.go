package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const writeTimeout = 5 * time.Second

// execer is the subset of pgxpool.Pool the recorder needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGRecorder appends events to the logs table from a single background
// writer fed by a buffered channel. Record never blocks: when the buffer is
// full the event is dropped and counted.
type PGRecorder struct {
	db     execer
	log    *slog.Logger
	ch     chan Event
	done   chan struct{}
	once   sync.Once
	onDrop func()
}

// NewPGRecorder starts the background writer. onDrop may be nil.
func NewPGRecorder(db execer, log *slog.Logger, buffer int, onDrop func()) *PGRecorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &PGRecorder{
		db:     db,
		log:    log,
		ch:     make(chan Event, buffer),
		done:   make(chan struct{}),
		onDrop: onDrop,
	}
	go r.run()
	return r
}

// Record enqueues an event with the current timestamp.
func (r *PGRecorder) Record(accountID *int64, kind Kind, description string) {
	ev := Event{
		AccountID:   accountID,
		Kind:        kind,
		Description: description,
		At:          time.Now().UTC(),
	}
	select {
	case r.ch <- ev:
	default:
		if r.onDrop != nil {
			r.onDrop()
		}
		r.log.Warn("event buffer full, dropping event", slog.String("kind", string(kind)))
	}
}

// Close stops accepting events, drains the buffer and waits for the writer.
func (r *PGRecorder) Close() {
	r.once.Do(func() {
		close(r.ch)
		<-r.done
	})
}

func (r *PGRecorder) run() {
	defer close(r.done)
	for ev := range r.ch {
		r.write(ev)
	}
}

func (r *PGRecorder) write(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO logs (user_id, event, description, timestamp) VALUES ($1, $2, $3, $4)`,
		ev.AccountID, string(ev.Kind), ev.Description, ev.At)
	if err != nil {
		r.log.Error("write audit event",
			slog.String("kind", string(ev.Kind)),
			slog.Any("error", err))
	}
}

var _ Recorder = (*PGRecorder)(nil)
