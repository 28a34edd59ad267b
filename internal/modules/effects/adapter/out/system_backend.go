package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"sprintbell/internal/modules/effects/domain"
	effectsout "sprintbell/internal/modules/effects/port/out"
	apperrors "sprintbell/internal/platform/errors"
)

// CommandRunner runs an external program and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// SystemBackend shells out to the desktop notifier: osascript on darwin,
// notify-send elsewhere.
type SystemBackend struct {
	goos     string
	run      CommandRunner
	lookPath func(string) (string, error)
}

func NewSystemBackend(goos string, run CommandRunner, lookPath func(string) (string, error)) effectsout.Backend {
	if goos == "" {
		goos = runtime.GOOS
	}
	if run == nil {
		run = ExecRunner
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &SystemBackend{goos: goos, run: run, lookPath: lookPath}
}

func (b *SystemBackend) Name() string {
	return domain.BackendSystem
}

func (b *SystemBackend) Available(_ context.Context) error {
	program := b.program()
	if _, err := b.lookPath(program); err != nil {
		return fmt.Errorf("%w: %s not found", apperrors.ErrNotifierUnavailable, program)
	}
	return nil
}

func (b *SystemBackend) Deliver(ctx context.Context, n domain.Notification) error {
	program := b.program()
	out, err := b.run(ctx, program, SystemArgs(b.goos, n)...)
	if err != nil {
		return fmt.Errorf("run %s: %w: %s", program, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (b *SystemBackend) program() string {
	if b.goos == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

// SystemArgs builds the notifier command line for goos.
func SystemArgs(goos string, n domain.Notification) []string {
	if goos == "darwin" {
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(n.Body), appleScriptString(n.Title))
		if n.Sound {
			script += ` sound name "default"`
		}
		return []string{"-e", script}
	}
	args := []string{"--app-name=SprintBell", "--category=" + n.Category}
	for _, action := range n.Actions {
		args = append(args, "--action="+action.ID+"="+action.Title)
	}
	return append(args, n.Title, n.Body)
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
