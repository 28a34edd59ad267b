package out

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"sprintbell/internal/modules/effects/domain"
	effectsout "sprintbell/internal/modules/effects/port/out"
	"sprintbell/internal/platform/clock"
)

const bell = "\a"

// ConsoleBackend prints a banner and rings the terminal bell. It is always available.
type ConsoleBackend struct {
	mu    sync.Mutex
	out   io.Writer
	clock clock.Clock
}

func NewConsoleBackend(out io.Writer, clk clock.Clock) effectsout.Backend {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &ConsoleBackend{out: out, clock: clk}
}

func (b *ConsoleBackend) Name() string {
	return domain.BackendConsole
}

func (b *ConsoleBackend) Available(context.Context) error {
	return nil
}

func (b *ConsoleBackend) Deliver(_ context.Context, n domain.Notification) error {
	border := strings.Repeat("=", 60)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n🔔 TIMER COMPLETED!\n%s\n", border, border)
	fmt.Fprintf(&sb, "%s\n%s\n", n.Title, n.Body)
	fmt.Fprintf(&sb, "⏰ %s\n", b.clock.Now().Format("15:04"))
	for _, action := range n.Actions {
		fmt.Fprintf(&sb, "   [%s]\n", action.Title)
	}
	sb.WriteString(border + "\n")
	if n.Sound {
		sb.WriteString(bell)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, sb.String()); err != nil {
		return fmt.Errorf("write console notification: %w", err)
	}
	return nil
}
