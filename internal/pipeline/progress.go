package pipeline

import (
	"log/slog"

	"overdub/internal/logging"
)

// progressCounter tracks completed pipeline units. Saving metadata is a
// checkpoint rather than a unit of work, so it never advances the counter.
type progressCounter struct {
	logger    *slog.Logger
	total     int
	completed int
}

func newProgressCounter(logger *slog.Logger, withCleanup bool) *progressCounter {
	total := 5
	if withCleanup {
		total = 6
	}
	return &progressCounter{logger: logger, total: total}
}

func (p *progressCounter) tick(stage Stage) {
	p.completed++
	p.logger.Info("stage complete",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String(logging.FieldStage, string(stage)),
		logging.Int("completed", p.completed),
		logging.Int("total", p.total))
}

func (p *progressCounter) done() int {
	return p.completed
}
