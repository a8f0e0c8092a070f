package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docstruct/internal/fragment"
	"github.com/dgallion1/docstruct/internal/heuristics"
	"github.com/dgallion1/docstruct/internal/parser"
)

// Converter turns an uploaded file into a document tree. It holds no
// per-document state and may be shared by all workers.
type Converter struct {
	Language string
	Log      *slog.Logger
	Stats    *LatencyStats
}

// NewConverter returns a converter with its own latency window.
func NewConverter(language string, statsWindow time.Duration, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{
		Language: language,
		Log:      log,
		Stats:    NewLatencyStats(statsWindow),
	}
}

// Convert parses data with the parser registered for filename's extension and
// builds the tree. A non-empty title replaces the one found in the file, a
// non-empty language replaces the converter default. It returns the result
// and the number of pages the parser produced.
func (c *Converter) Convert(ctx context.Context, data []byte, filename, title, language string) (*heuristics.Result, int, error) {
	start := time.Now()
	stream, err := c.Parse(ctx, data, filename, title)
	if err != nil {
		return nil, 0, err
	}
	res := c.Build(stream, language)
	c.observe(start, filename, stream, res)
	return res, len(stream.Pages), nil
}

// Parse turns data into a fragment stream. A non-empty title replaces the one
// found in the file.
func (c *Converter) Parse(ctx context.Context, data []byte, filename, title string) (*fragment.Stream, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	stream, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if title != "" {
		stream.Title = title
	}
	return stream, nil
}

// Build runs the heuristics over a parsed stream. An empty language uses the
// converter default.
func (c *Converter) Build(stream *fragment.Stream, language string) *heuristics.Result {
	if language == "" {
		language = c.Language
	}
	return heuristics.Convert(stream, heuristics.Options{Language: language, Logger: c.logger()})
}

// observe records the latency of a finished conversion.
func (c *Converter) observe(start time.Time, filename string, stream *fragment.Stream, res *heuristics.Result) {
	if c.Stats != nil {
		c.Stats.Since(start)
	}
	c.logger().Debug("converted",
		"filename", filename,
		"pages", len(stream.Pages),
		"fragments", res.Fragments,
		"removed", len(res.Removed),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (c *Converter) logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}
