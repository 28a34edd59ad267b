package domain_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"sprintbell/internal/modules/command/domain"
	apperrors "sprintbell/internal/platform/errors"
)

func TestParseStartDefaultsAndParameters(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want domain.Command
	}{
		{raw: "sprintbell://start", want: domain.Command{Kind: domain.KindStart, Minutes: 25, Title: "Focus Session", Goals: []string{}}},
		{raw: "sprintbell://start?mins=abc&title=", want: domain.Command{Kind: domain.KindStart, Minutes: 25, Title: "Focus Session", Goals: []string{}}},
		{raw: "sprintbell://start?mins=50&title=Deep%20Work&goals=a,%20b%20,,c", want: domain.Command{Kind: domain.KindStart, Minutes: 50, Title: "Deep Work", Goals: []string{"a", "b", "c"}}},
		{raw: "SPRINTBELL://START?mins=0", want: domain.Command{Kind: domain.KindStart, Minutes: 0, Title: "Focus Session", Goals: []string{}}},
	}
	for _, tc := range cases {
		got, err := domain.Parse(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parse %q = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
	cmd, _ := domain.Parse("sprintbell://start?mins=2")
	if cmd.DurationSeconds() != 120 {
		t.Fatalf("duration = %d", cmd.DurationSeconds())
	}
}

func TestParseOtherCommands(t *testing.T) {
	t.Parallel()
	pause, err := domain.Parse("sprintbell://pause")
	if err != nil || pause.Kind != domain.KindPause {
		t.Fatalf("pause: %+v %v", pause, err)
	}
	stop, err := domain.Parse("sprintbell://stop")
	if err != nil || stop.Result != "Stopped" {
		t.Fatalf("stop default: %+v %v", stop, err)
	}
	stop, _ = domain.Parse("sprintbell://stop?result=Complete")
	if stop.Result != "Complete" {
		t.Fatalf("stop result: %+v", stop)
	}
	note, _ := domain.Parse("sprintbell://note?text=call%20back")
	if note.Kind != domain.KindNote || note.Text != "call back" {
		t.Fatalf("note: %+v", note)
	}
}

func TestParseRejectsBadURLs(t *testing.T) {
	t.Parallel()
	cases := map[string]error{
		"https://start?mins=5":        apperrors.ErrSchemeMismatch,
		"sprintbell:start":            apperrors.ErrUnknownCommand,
		"sprintbell://launch":         apperrors.ErrUnknownCommand,
		"sprintbell://start?mins=-10": apperrors.ErrInvalidInput,
	}
	for raw, want := range cases {
		if _, err := domain.Parse(raw); !errors.Is(err, want) {
			t.Fatalf("parse %q: expected %v, got %v", raw, want, err)
		}
	}
}

func TestURLBuildersRoundTrip(t *testing.T) {
	t.Parallel()
	raw := domain.StartURL(40, "Write & review", []string{"intro", "outro"})
	if !strings.HasPrefix(raw, "sprintbell://start?mins=40&title=") {
		t.Fatalf("unexpected start url: %s", raw)
	}
	cmd, err := domain.Parse(raw)
	if err != nil {
		t.Fatalf("parse start url: %v", err)
	}
	if cmd.Minutes != 40 || cmd.Title != "Write & review" || !reflect.DeepEqual(cmd.Goals, []string{"intro", "outro"}) {
		t.Fatalf("round trip lost data: %+v", cmd)
	}

	if domain.PauseURL() != "sprintbell://pause" {
		t.Fatalf("pause url: %s", domain.PauseURL())
	}
	if domain.StopURL("") != "sprintbell://stop?result=Complete" {
		t.Fatalf("stop url: %s", domain.StopURL(""))
	}
	note, _ := domain.Parse(domain.NoteURL("a+b c"))
	if note.Text != "a+b c" {
		t.Fatalf("note round trip: %q", note.Text)
	}
}

func TestVSCodeTemplates(t *testing.T) {
	t.Parallel()
	tasks, err := domain.VSCodeTasks([]string{"sprintbell", "open"})
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if !strings.Contains(tasks, "sprintbell://start?mins=25&title=${workspaceFolderBasename}&goals=focus") {
		t.Fatalf("tasks template missing raw start url:\n%s", tasks)
	}
	var decoded struct {
		Version string `json:"version"`
		Tasks   []struct {
			Label   string   `json:"label"`
			Command string   `json:"command"`
			Args    []string `json:"args"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(tasks), &decoded); err != nil {
		t.Fatalf("tasks template is not json: %v", err)
	}
	if decoded.Version != "2.0.0" || len(decoded.Tasks) != 4 || decoded.Tasks[2].Args[1] != "sprintbell://pause" || decoded.Tasks[0].Command != "sprintbell" {
		t.Fatalf("unexpected tasks: %+v", decoded)
	}

	keys, err := domain.VSCodeKeybindings("cmd")
	if err != nil {
		t.Fatalf("keybindings: %v", err)
	}
	if !strings.Contains(keys, `"key": "cmd+shift+s"`) || !strings.Contains(keys, domain.TaskStop) {
		t.Fatalf("unexpected keybindings:\n%s", keys)
	}
}
