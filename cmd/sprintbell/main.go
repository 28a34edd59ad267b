package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sprintbell/internal/bootstrap"
	daemondto "sprintbell/internal/modules/daemon/dto"
	prefdto "sprintbell/internal/modules/preferences/dto"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	"sprintbell/internal/platform/config"
	apperrors "sprintbell/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "sprintbell",
		Short:         "Focus-session countdown timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: user config dir/SprintBell)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newDaemonCmd(&dataDir))
	root.AddCommand(newOpenCmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newGoalsCmd(&dataDir))
	root.AddCommand(newPrefsCmd(&dataDir))
	root.AddCommand(newResetDataCmd(&dataDir))
	root.AddCommand(newLogsCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	root.AddCommand(newIntegrateCmd(&dataDir))
	return root
}

func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(dataDir string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, dataDir)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

// ensureDaemon starts the background daemon when none is serving.
func ensureDaemon(ctx context.Context, app *bootstrap.App) error {
	if app.DaemonCLI.Running(ctx) {
		return nil
	}
	return app.DaemonCLI.Start(ctx, []string{"daemon", "run", "--data-dir", app.Config.DataDir})
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the countdown in a terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if app.DaemonCLI.Running(ctx) {
				return errors.New("the daemon owns the timer; run `sprintbell daemon stop` first")
			}
			return bootstrap.RunTUI(ctx, app)
		},
	}
}

func newDaemonCmd(dataDir *string) *cobra.Command {
	daemon := &cobra.Command{Use: "daemon", Short: "Manage the background timer daemon"}
	daemon.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the daemon in foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.RestoreTimer(ctx); err != nil {
				return err
			}
			defer app.Shutdown(context.Background())
			return app.DaemonCLI.Run(ctx)
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the daemon in background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := ensureDaemon(ctx, app); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon started")
				return nil
			})
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.DaemonCLI.Stop(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon stopped")
				return nil
			})
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				status, err := app.DaemonCLI.Status(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "running=%t pid=%d socket=%s\n", status.Running, status.PID, status.SocketPath)
				if status.Status != nil {
					_, _ = fmt.Fprintf(out, "since=%s\n", status.Status.StartedAt.Format(time.RFC3339))
					printState(out, status.Status.Timer)
					printGoals(out, status.Status.Goals)
				}
				return nil
			})
		},
	})
	return daemon
}

func newOpenCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open <sprintbell://url>",
		Short: "Handle a sprintbell:// command URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := ensureDaemon(ctx, app); err != nil {
					return err
				}
				result, err := app.DaemonCLI.Open(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			})
		},
	}
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Control the countdown held by the daemon"}

	simple := func(use, short, action string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runTimer(cmd, *dataDir, daemondto.TimerRequest{Action: action})
			},
		}
	}
	timer.AddCommand(
		simple("status", "Show the countdown", daemondto.TimerStatus),
		simple("start", "Start or resume the countdown", daemondto.TimerStart),
		simple("stop", "Pause the countdown", daemondto.TimerStop),
		simple("pause", "Toggle between running and paused", daemondto.TimerPause),
	)

	timer.AddCommand(&cobra.Command{
		Use:   "reset <minutes> [title...]",
		Short: "Reset to a duration and optional title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[0], apperrors.ErrInvalidInput)
			}
			seconds := minutes * 60
			req := daemondto.TimerRequest{Action: daemondto.TimerReset, DurationSeconds: &seconds}
			if title := strings.TrimSpace(strings.Join(args[1:], " ")); title != "" {
				req.Title = &title
			}
			return runTimer(cmd, *dataDir, req)
		},
	})

	var minutes int
	var title string
	var keepGoals bool
	newSession := &cobra.Command{
		Use:   "new",
		Short: "Log the current session and prepare a fresh one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := daemondto.TimerRequest{Action: daemondto.TimerNew, KeepSubGoals: keepGoals}
			if cmd.Flags().Changed("minutes") {
				seconds := minutes * 60
				req.DurationSeconds = &seconds
			}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			return runTimer(cmd, *dataDir, req)
		},
	}
	newSession.Flags().IntVar(&minutes, "minutes", 0, "session length (default: preference)")
	newSession.Flags().StringVar(&title, "title", "", "session title (default: last used)")
	newSession.Flags().BoolVar(&keepGoals, "keep-goals", false, "keep sub-goals for the next session")
	timer.AddCommand(newSession)
	return timer
}

func runTimer(cmd *cobra.Command, dataDir string, req daemondto.TimerRequest) error {
	return withApp(dataDir, func(ctx context.Context, app *bootstrap.App) error {
		if req.Action != daemondto.TimerStatus {
			if err := ensureDaemon(ctx, app); err != nil {
				return err
			}
		}
		state, err := app.DaemonCLI.Timer(ctx, req)
		if errors.Is(err, apperrors.ErrDaemonNotRunning) {
			return errors.New("daemon is not running; start it with `sprintbell daemon start`")
		}
		if err != nil {
			return err
		}
		printState(cmd.OutOrStdout(), state)
		return nil
	})
}

func newGoalsCmd(dataDir *string) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Manage sub-goals for the current session"}

	goals.AddCommand(
		goalCmd(dataDir, "list", "List sub-goals", daemondto.GoalsList, cobra.NoArgs),
		goalCmd(dataDir, "add <text...>", "Add a sub-goal", daemondto.GoalsAdd, cobra.MinimumNArgs(1)),
		goalCmd(dataDir, "toggle <id|index>", "Toggle a sub-goal", daemondto.GoalsToggle, cobra.ExactArgs(1)),
		goalCmd(dataDir, "delete <id|index>", "Delete a sub-goal", daemondto.GoalsDelete, cobra.ExactArgs(1)),
		goalCmd(dataDir, "clear", "Remove every sub-goal", daemondto.GoalsClear, cobra.NoArgs),
		goalCmd(dataDir, "done-all", "Mark every sub-goal completed", daemondto.GoalsDoneAll, cobra.NoArgs),
	)
	return goals
}

func goalCmd(dataDir *string, use, short, action string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			arg := strings.TrimSpace(strings.Join(argv, " "))
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				list, err := goalsAction(ctx, app, action, arg)
				if err != nil {
					return err
				}
				printGoals(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}
}

// goalsAction routes through the daemon when it is serving, since it holds the
// live list; otherwise the store is edited directly.
func goalsAction(ctx context.Context, app *bootstrap.App, action, arg string) (subgoaldto.ListOutput, error) {
	if app.DaemonCLI.Running(ctx) {
		return app.DaemonCLI.Goals(ctx, action, arg)
	}
	var err error
	switch action {
	case daemondto.GoalsList:
	case daemondto.GoalsAdd:
		_, err = app.GoalsCLI.Add(ctx, arg)
	case daemondto.GoalsToggle:
		_, err = app.GoalsCLI.Toggle(ctx, arg)
	case daemondto.GoalsDelete:
		err = app.GoalsCLI.Delete(ctx, arg)
	case daemondto.GoalsClear:
		err = app.GoalsCLI.Clear(ctx)
	case daemondto.GoalsDoneAll:
		err = app.GoalsCLI.DoneAll(ctx)
	}
	if err != nil {
		return subgoaldto.ListOutput{}, err
	}
	return app.GoalsCLI.List(ctx)
}

func newPrefsCmd(dataDir *string) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Show or change preferences"}
	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.PrefsCLI.Show(ctx)
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), p)
				return nil
			})
		},
	})

	var minutes int
	var title string
	var sound, notifications, actions bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := prefdto.UpdateInput{}
			flags := cmd.Flags()
			if flags.Changed("duration") {
				seconds := minutes * 60
				input.DefaultDuration = &seconds
			}
			if flags.Changed("title") {
				input.LastUsedTitle = &title
			}
			if flags.Changed("sound") {
				input.SoundEnabled = &sound
			}
			if flags.Changed("notifications") {
				input.NotificationsEnabled = &notifications
			}
			if flags.Changed("actions") {
				input.ShowNotificationActions = &actions
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.PrefsCLI.Set(ctx, input)
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	set.Flags().IntVar(&minutes, "duration", 25, "default session length in minutes")
	set.Flags().StringVar(&title, "title", "", "default session title")
	set.Flags().BoolVar(&sound, "sound", true, "play a sound on completion")
	set.Flags().BoolVar(&notifications, "notifications", true, "post a notification on completion")
	set.Flags().BoolVar(&actions, "actions", true, "show notification actions")
	prefs.AddCommand(set)
	return prefs
}

func newResetDataCmd(dataDir *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset-data",
		Short: "Erase preferences, sub-goals and the saved countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to erase data without --yes")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if app.DaemonCLI.Running(ctx) {
					return errors.New("stop the daemon before resetting data")
				}
				if err := app.PrefsCLI.ResetData(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newLogsCmd(dataDir *string) *cobra.Command {
	logs := &cobra.Command{Use: "logs", Short: "Inspect the session journal"}
	logs.AddCommand(&cobra.Command{
		Use:   "files",
		Short: "List journal files, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				files, current := app.LogsCLI.Files(ctx)
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "current: %s\n", current)
				for _, f := range files {
					_, _ = fmt.Fprintf(out, "%s\t%d\t%s\n", f.Name, f.Size, f.ModTime.Format(time.RFC3339))
				}
				return nil
			})
		},
	})

	var limit int
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				records, err := app.LogsCLI.Tail(ctx, limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions logged")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%.0f%%\n",
						r.StartTime.Local().Format("2006-01-02 15:04"), r.Outcome, r.FormattedDuration, r.Title, r.CompletionPercentage*100)
				}
				return nil
			})
		},
	}
	tail.Flags().IntVar(&limit, "limit", 10, "number of sessions")
	logs.AddCommand(tail)

	logs.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Summarize logged sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.LogsCLI.Stats(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions=%d completed=%d interrupted=%d focused=%s avg_completion=%.0f%% avg_effectiveness=%.0f%%\n",
					s.Sessions, s.Completed, s.Interrupted, (time.Duration(s.FocusedSeconds) * time.Second).String(), s.AverageCompletion*100, s.AverageEffectiveness*100)
				return nil
			})
		},
	})

	var date, dir string
	report := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown report for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				day = parsed
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.LogsCLI.Report(ctx, day, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	report.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default: today)")
	report.Flags().StringVar(&dir, "dir", "", "write <dir>/<date>.md instead of printing")
	logs.AddCommand(report)

	logs.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the stats index from journal files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.LogsCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d sessions\n", n)
				return nil
			})
		},
	})
	return logs
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Notification and sound backends"}
	notify.AddCommand(&cobra.Command{
		Use:   "backends",
		Short: "List notification backends in delivery order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				for _, b := range app.EffectsCLI.Backends(ctx) {
					line := fmt.Sprintf("%s\tavailable=%t", b.Name, b.Available)
					if b.Detail != "" {
						line += "\t" + b.Detail
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	})
	notify.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.EffectsCLI.TestNotify(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered via %s: %s • %s\n", out.Backend, out.Title, out.Body)
				return nil
			})
		},
	})
	notify.AddCommand(&cobra.Command{
		Use:   "sound",
		Short: "Play the completion sound",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				app.EffectsCLI.TestSound(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sound played")
				return nil
			})
		},
	})
	return notify
}

func newIntegrateCmd(dataDir *string) *cobra.Command {
	integrate := &cobra.Command{Use: "integrate", Short: "Editor integrations"}

	var opener []string
	var modifier, write string
	vscode := &cobra.Command{
		Use:   "vscode",
		Short: "Generate VS Code tasks and keybindings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CommandCLI.VSCode(ctx, opener, modifier)
				if err != nil {
					return err
				}
				if write == "" {
					w := cmd.OutOrStdout()
					_, _ = fmt.Fprintln(w, "// tasks.json")
					_, _ = fmt.Fprintln(w, out.Tasks)
					_, _ = fmt.Fprintln(w, "// keybindings.json")
					_, _ = fmt.Fprintln(w, out.Keybindings)
					return nil
				}
				if err := os.MkdirAll(write, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", write, err)
				}
				for name, body := range map[string]string{"tasks.json": out.Tasks, "keybindings.json": out.Keybindings} {
					if err := os.WriteFile(filepath.Join(write, name), []byte(body+"\n"), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", name, err)
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote tasks.json and keybindings.json to %s\n", write)
				return nil
			})
		},
	}
	vscode.Flags().StringSliceVar(&opener, "opener", nil, "command that opens sprintbell:// URLs (default: sprintbell,open)")
	vscode.Flags().StringVar(&modifier, "modifier", "", "keybinding modifier (default: ctrl)")
	vscode.Flags().StringVar(&write, "write", "", "directory to write the files into, e.g. .vscode")
	integrate.AddCommand(vscode)
	return integrate
}

func printState(w io.Writer, s timerdto.StateOutput) {
	_, _ = fmt.Fprintln(w, s.DisplayText)
	_, _ = fmt.Fprintf(w, "phase=%s running=%t remaining=%ds total=%ds progress=%.0f%%\n",
		s.Phase, s.IsRunning, s.RemainingSeconds, s.TotalDurationSeconds, s.Progress*100)
}

func printGoals(w io.Writer, list subgoaldto.ListOutput) {
	if len(list.Goals) == 0 {
		_, _ = fmt.Fprintln(w, "no sub-goals")
		return
	}
	for i, g := range list.Goals {
		mark := " "
		if g.IsCompleted {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "%d. [%s] %s\t%s\n", i+1, mark, g.Text, g.ID)
	}
	_, _ = fmt.Fprintf(w, "%d/%d completed\n", list.Completed, list.Total)
}

func printPrefs(w io.Writer, p prefdto.PreferencesOutput) {
	_, _ = fmt.Fprintf(w, "default_duration=%dmin\nlast_title=%s\nsound=%t\nnotifications=%t\nactions=%t\nversion=%s\n",
		p.DefaultDuration/60, p.LastUsedTitle, p.SoundEnabled, p.NotificationsEnabled, p.ShowNotificationActions, p.AppVersion)
}
