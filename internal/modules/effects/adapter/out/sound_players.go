package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	effectsout "sprintbell/internal/modules/effects/port/out"
)

// CommandPlayer runs a configured command such as `afplay Glass.aiff`.
type CommandPlayer struct {
	argv []string
	run  CommandRunner
}

func NewCommandPlayer(argv []string, run CommandRunner) effectsout.Player {
	if run == nil {
		run = ExecRunner
	}
	return &CommandPlayer{argv: argv, run: run}
}

func (p *CommandPlayer) Name() string {
	return "command"
}

func (p *CommandPlayer) Play(ctx context.Context) error {
	if len(p.argv) == 0 {
		return errors.New("no sound command configured for " + runtime.GOOS)
	}
	if out, err := p.run(ctx, p.argv[0], p.argv[1:]...); err != nil {
		return fmt.Errorf("run %s: %w: %s", p.argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

type BellPlayer struct {
	out io.Writer
}

func NewBellPlayer(out io.Writer) effectsout.Player {
	return &BellPlayer{out: out}
}

func (p *BellPlayer) Name() string {
	return "bell"
}

func (p *BellPlayer) Play(context.Context) error {
	_, err := io.WriteString(p.out, bell)
	return err
}
