package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/ppac/internal/ui/style"
)

// Console is a progrock.Writer that prints vertex logs as they arrive and one
// status line per completed vertex.
type Console struct {
	out io.Writer

	mu     sync.Mutex
	cached map[string]bool
	done   map[string]bool
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		cached: make(map[string]bool),
		done:   make(map[string]bool),
	}
}

// WriteStatus renders a status update.
func (c *Console) WriteStatus(update *progrock.StatusUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range update.Logs {
		if _, err := c.out.Write(l.Data); err != nil {
			return err
		}
	}

	for _, v := range update.Vertexes {
		if v.Cached {
			c.cached[v.Id] = true
		}
		if v.Completed == nil || c.done[v.Id] {
			continue
		}
		c.done[v.Id] = true

		var line string
		switch {
		case v.Error != nil:
			line = fmt.Sprintf("%s %s: %s", style.Failure.Render(style.Cross), v.Name, *v.Error)
		case c.cached[v.Id]:
			line = fmt.Sprintf("%s %s %s", style.Faded.Render(style.Dot), v.Name, style.Faded.Render("(up to date)"))
		default:
			line = fmt.Sprintf("%s %s", style.Success.Render(style.Check), v.Name)
		}
		if _, err := fmt.Fprintln(c.out, line); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing; the underlying writer is owned by the caller.
func (c *Console) Close() error {
	return nil
}
