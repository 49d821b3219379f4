// Package backup writes point-in-time snapshots of every collection to one
// or more sinks (a local directory, an S3-compatible bucket) and runs them,
// along with other housekeeping jobs, on cron schedules.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Source yields the serialized array of every collection.
type Source interface {
	Snapshot(ctx context.Context) (map[domain.Collection]json.RawMessage, error)
}

// Sink stores a named snapshot.
type Sink interface {
	Name() string
	Put(ctx context.Context, name string, data []byte) error
}

// Snapshot is the on-disk backup document.
type Snapshot struct {
	TakenAt     time.Time                             `json:"takenAt"`
	Collections map[domain.Collection]json.RawMessage `json:"collections"`
}

var (
	backupRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "Collection backups by sink and result.",
		},
		[]string{"sink", "result"},
	)
	backupBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backup_snapshot_bytes",
			Help:    "Size of collection snapshots in bytes.",
			Buckets: prometheus.ExponentialBuckets(1<<10, 4, 8), // 1KiB..16MiB
		},
	)
	backupLastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_last_success_timestamp_seconds",
			Help: "Unix time of the last backup that reached every sink.",
		},
	)
)

func init() {
	prometheus.MustRegister(backupRuns, backupBytes, backupLastSuccess)
}

// Backuper takes snapshots from Source and writes them to every sink.
type Backuper struct {
	Source Source
	Sinks  []Sink
	Now    func() time.Time
}

// New returns a Backuper using the wall clock.
func New(src Source, sinks ...Sink) *Backuper {
	return &Backuper{Source: src, Sinks: sinks, Now: time.Now}
}

// ObjectName returns the snapshot name for t, e.g.
// "collections-20250301T020000Z.json".
func ObjectName(t time.Time) string {
	return "collections-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Run takes one snapshot and writes it to every sink. A failing sink does not
// stop the others; their errors are joined.
func (b *Backuper) Run(ctx context.Context) (string, error) {
	if len(b.Sinks) == 0 {
		return "", errors.New("backup: no sinks configured")
	}
	now := b.Now()
	cols, err := b.Source.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("backup: snapshot: %w", err)
	}
	data, err := json.Marshal(Snapshot{TakenAt: now.UTC(), Collections: cols})
	if err != nil {
		return "", fmt.Errorf("backup: encode: %w", err)
	}
	backupBytes.Observe(float64(len(data)))

	name := ObjectName(now)
	var errs []error
	for _, s := range b.Sinks {
		if err := s.Put(ctx, name, data); err != nil {
			backupRuns.WithLabelValues(s.Name(), "error").Inc()
			log.Error().Err(err).Str("sink", s.Name()).Str("object", name).Msg("backup failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		backupRuns.WithLabelValues(s.Name(), "ok").Inc()
		log.Info().Str("sink", s.Name()).Str("object", name).Int("bytes", len(data)).Msg("backup written")
	}
	if len(errs) > 0 {
		return name, errors.Join(errs...)
	}
	backupLastSuccess.Set(float64(now.Unix()))
	return name, nil
}
