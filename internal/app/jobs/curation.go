// Package jobs runs background work on a schedule.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/gallery"

	"github.com/robfig/cron/v3"
)

type Curator interface {
	Curate(ctx context.Context) ([]works.Exhibition, error)
}

// CurationJob runs one curation pass per tick.
type CurationJob struct {
	curator Curator
	timeout time.Duration
	log     *slog.Logger
}

func NewCurationJob(curator Curator, timeout time.Duration, logger *slog.Logger) *CurationJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurationJob{curator: curator, timeout: timeout, log: logger.With("job", "curation")}
}

func (j *CurationJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	drafts, err := j.curator.Curate(ctx)
	switch {
	case err == nil:
		j.log.Info("scheduled curation stored drafts", "drafts", len(drafts))
	case errors.Is(err, gallery.ErrCurationBusy), errors.Is(err, gallery.ErrNotEnoughArtworks):
		j.log.Info("scheduled curation skipped", "reason", err)
	default:
		j.log.Error("scheduled curation failed", "error", err)
	}
}

// Schedule registers job under spec on a UTC cron. The caller starts and
// stops the returned scheduler.
func Schedule(spec string, job cron.Job) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return c, nil
}
