package fizzbuzz

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/overlay"
)

// CallLog is the 'fizzbuzz.call_log' reference overlay. Every handler it is
// applied to comes back wrapped so that each Handle call is written to w as
// "Calling <path>#handle <n>". Other values pass through.
type CallLog struct {
	w io.Writer
}

// New implements overlay.Constructible.
func (c *CallLog) New(ctx context.Context, current any, _ ...any) (any, error) {
	h, ok := current.(Handler)
	if !ok {
		return current, nil
	}
	name := "(unknown)"
	if target, ok := overlay.TargetFromContext(ctx); ok {
		name = target.String()
	}
	return &loggedHandler{name: name, inner: h, w: c.w, logger: ctxlog.FromContext(ctx)}, nil
}

type loggedHandler struct {
	name   string
	inner  Handler
	w      io.Writer
	logger *slog.Logger
}

func (l *loggedHandler) Handle(n int) (string, bool) {
	fmt.Fprintf(l.w, "Calling %s#handle %d\n", l.name, n)
	l.logger.Debug("Handler called.", "handler", l.name, "n", n)
	return l.inner.Handle(n)
}
