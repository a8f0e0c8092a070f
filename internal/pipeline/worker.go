package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docstruct/internal/parser"
)

// Worker processes one document job at a time.
type Worker struct {
	conv *Converter
	log  *slog.Logger
}

func NewWorker(conv *Converter, log *slog.Logger) *Worker {
	return &Worker{conv: conv, log: log}
}

// Process runs the conversion for a job and leaves it completed or failed.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusParsing, "parsing")
	data := job.FileData()
	if len(data) == 0 {
		log.Warn("empty upload")
		job.AddError("empty file")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	start := time.Now()
	stream, err := w.conv.Parse(ctx, data, job.Filename, job.Title)
	if err != nil {
		phase := "parsing"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			phase = "cancelled"
		}
		if errors.Is(err, parser.ErrUnsupported) {
			log.Error("unsupported format", "error", err)
		} else {
			log.Error("conversion failed", "error", err)
		}
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, phase)
		return
	}
	job.SetPages(len(stream.Pages))

	job.SetStatus(StatusConverting, "converting")
	res := w.conv.Build(stream, job.Language)
	w.conv.observe(start, job.Filename, stream, res)
	job.SetResult(res)

	snap := job.Snapshot()
	log.Info("conversion complete",
		"pages", snap.Progress.Pages,
		"sections", snap.Progress.Sections,
		"paragraphs", snap.Progress.Paragraphs,
		"floats", snap.Progress.Floats,
		"removed", snap.Progress.Removed,
	)
	job.SetStatus(StatusCompleted, "done")
}
