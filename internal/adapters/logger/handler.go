package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/ppac/internal/ui/output"
	"go.trai.ch/ppac/internal/ui/style"
)

// mark is the icon and colour a line of a given level starts with.
type mark struct {
	icon  string
	color lipgloss.Color
}

// markFor returns the mark of level. Info lines are printed unmarked.
func markFor(level slog.Level) (mark, bool) {
	switch {
	case level >= slog.LevelError:
		return mark{icon: style.Cross, color: style.Red}, true
	case level >= slog.LevelWarn:
		return mark{icon: style.Warning, color: style.Yellow}, true
	case level < slog.LevelInfo:
		return mark{icon: style.Dot, color: style.Slate}, true
	default:
		return mark{}, false
	}
}

// PrettyHandler is a slog.Handler printing one marked, coloured line per record.
// Attributes follow the message as key=value pairs, qualified by the open groups.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler

	// prefix is the dotted path of the groups opened with WithGroup.
	prefix string

	// attrs are the attributes added with WithAttrs, already rendered.
	attrs string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	m, marked := markFor(r.Level)
	if marked {
		b.WriteString(m.icon)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&b, h.prefix, attr)
		return true
	})

	line := h.out.String(b.String())
	if marked {
		line = line.Foreground(h.out.Color(string(m.color)))
	}
	_, err := io.WriteString(h.out, line.String()+"\n")
	return err
}

// WithAttrs returns a handler that prints attrs on every record. They keep the
// groups open at this point, not the ones opened later.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, attr := range attrs {
		appendAttr(&b, h.prefix, attr)
	}

	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// appendAttr writes " key=value" to b. Group values are flattened into dotted keys
// and empty attributes are skipped.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, prefix, member)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(attr.Key)
	b.WriteByte('=')
	b.WriteString(attr.Value.String())
}
