package domain

import (
	"bytes"
	"encoding/json"
)

type vscodeTask struct {
	Label          string             `json:"label"`
	Type           string             `json:"type"`
	Command        string             `json:"command"`
	Args           []string           `json:"args"`
	Group          string             `json:"group"`
	Presentation   vscodePresentation `json:"presentation"`
	ProblemMatcher []string           `json:"problemMatcher"`
}

type vscodePresentation struct {
	Echo             bool   `json:"echo"`
	Reveal           string `json:"reveal"`
	Focus            bool   `json:"focus"`
	Panel            string `json:"panel"`
	ShowReuseMessage bool   `json:"showReuseMessage"`
}

type vscodeTasks struct {
	Version string       `json:"version"`
	Tasks   []vscodeTask `json:"tasks"`
}

type vscodeKeybinding struct {
	Key     string `json:"key"`
	Command string `json:"command"`
	Args    string `json:"args"`
	When    string `json:"when"`
}

const (
	TaskStartFocus = "SprintBell: Start 25min Focus"
	TaskDeepWork   = "SprintBell: Start 50min Deep Work"
	TaskPause      = "SprintBell: Pause/Resume"
	TaskStop       = "SprintBell: Stop Sprint"
)

// VSCodeTasks renders a tasks.json whose tasks hand sprintbell:// URLs to opener,
// e.g. "open" on macOS or the sprintbell binary with its open subcommand.
func VSCodeTasks(opener []string) (string, error) {
	task := func(label, target string) vscodeTask {
		args := append(append([]string{}, opener[1:]...), target)
		return vscodeTask{
			Label:          label,
			Type:           "shell",
			Command:        opener[0],
			Args:           args,
			Group:          "build",
			Presentation:   vscodePresentation{Echo: true, Reveal: "never", Panel: "shared"},
			ProblemMatcher: []string{},
		}
	}
	doc := vscodeTasks{
		Version: "2.0.0",
		Tasks: []vscodeTask{
			task(TaskStartFocus, Scheme+"://start?mins=25&title=${workspaceFolderBasename}&goals=focus"),
			task(TaskDeepWork, Scheme+"://start?mins=50&title=${workspaceFolderBasename}&goals=implementation,testing,documentation"),
			task(TaskPause, PauseURL()),
			task(TaskStop, StopURL("Complete")),
		},
	}
	return marshalTemplate(doc)
}

// VSCodeKeybindings uses modifier "cmd" on macOS and "ctrl" elsewhere.
func VSCodeKeybindings(modifier string) (string, error) {
	bind := func(key, task string) vscodeKeybinding {
		return vscodeKeybinding{Key: modifier + "+shift+" + key, Command: "workbench.action.tasks.runTask", Args: task, When: "!inDebugMode"}
	}
	return marshalTemplate([]vscodeKeybinding{
		bind("s", TaskStartFocus),
		bind("d", TaskDeepWork),
		bind("p", TaskPause),
		bind("x", TaskStop),
	})
}

// marshalTemplate keeps '&' in URLs readable instead of \u0026.
func marshalTemplate(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
