package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes lattice events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or at Warn level for errors and
// drift overlaps.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("build_id", event.BuildID),
		slog.String("source", event.Source.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Subject != "" {
		attrs = append(attrs, slog.String("subject", event.Subject))
	}

	switch {
	case event.Build != nil:
		b := event.Build
		attrs = append(attrs,
			slog.Int("elements", b.Elements),
			slog.Int("sections", b.Sections),
			slog.Int("layouts", b.Layouts),
			slog.Duration("duration", b.Duration),
		)
		if b.DefaultPath != "" {
			attrs = append(attrs, slog.String("default_path", b.DefaultPath))
		}
		if len(b.Dropped) > 0 {
			attrs = append(attrs, slog.Any("dropped", b.Dropped))
		}
		if b.Reversals > 0 {
			attrs = append(attrs, slog.Int("reversals", b.Reversals))
		}
	case event.Query != nil:
		q := event.Query
		attrs = append(attrs,
			slog.String("operation", q.Operation.String()),
			slog.Int("results", q.Results),
		)
		if q.Path != "" {
			attrs = append(attrs, slog.String("path", q.Path))
		}
		if q.Start != "" || q.End != "" {
			attrs = append(attrs, slog.String("start", q.Start), slog.String("end", q.End))
		}
	case event.Drift != nil:
		d := event.Drift
		attrs = append(attrs,
			slog.Int("drifts", d.Drifts),
			slog.Float64("total_length", d.TotalLength),
		)
		if len(d.Overlaps) > 0 {
			level = slog.LevelWarn
			for _, o := range d.Overlaps {
				attrs = append(attrs, slog.Group("overlap",
					slog.String("previous", o.Previous),
					slog.String("next", o.Next),
					slog.Float64("length", o.Length),
				))
			}
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "lattice", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
