package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stacktraceHandler decorates a slog handler so that records carrying an
// error attribute also get a stacktrace attribute, recovered from the
// cockroachdb/errors safe details attached at construction time.
type stacktraceHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler wraps a handler with stacktrace extraction. Records
// without an error attribute pass through unchanged.
func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &stacktraceHandler{next: next}
}

func (h *stacktraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *stacktraceHandler) Handle(ctx context.Context, record slog.Record) error {
	var trace string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			trace = stacktraceOf(err)
		}
		return false
	})
	if trace != "" {
		record.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, record)
}

func (h *stacktraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stacktraceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stacktraceHandler) WithGroup(name string) slog.Handler {
	return &stacktraceHandler{next: h.next.WithGroup(name)}
}

// stacktraceOf returns the first safe detail of err, which for errors built
// with errors.WithStack is the formatted stacktrace.
func stacktraceOf(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) == 0 {
		return ""
	}
	return details[0]
}
