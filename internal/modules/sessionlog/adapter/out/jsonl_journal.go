package out

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"sprintbell/internal/modules/sessionlog/domain"
	sessionlogout "sprintbell/internal/modules/sessionlog/port/out"
	"sprintbell/internal/platform/clock"
)

type JournalOptions struct {
	Dir          string
	MaxFiles     int
	MaxFileBytes int64
}

// JSONLJournal appends one record per line to a per-day file and rotates by count
// once the current file reaches the size limit.
type JSONLJournal struct {
	mu     sync.Mutex
	opts   JournalOptions
	clock  clock.Clock
	logger hclog.Logger
}

func NewJSONLJournal(opts JournalOptions, clock clock.Clock, logger hclog.Logger) sessionlogout.Journal {
	return &JSONLJournal{opts: opts, clock: clock, logger: logger}
}

func (j *JSONLJournal) CurrentPath() string {
	return filepath.Join(j.opts.Dir, domain.FileNameFor(j.clock.Now()))
}

func (j *JSONLJournal) Append(_ context.Context, record domain.SessionRecord) error {
	line, err := domain.MarshalLine(record)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(j.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	current := j.CurrentPath()
	if info, err := os.Stat(current); err == nil && info.Size() >= j.opts.MaxFileBytes {
		if err := j.rotate(); err != nil {
			j.logger.Warn("session log rotation failed, appending anyway", "dir", j.opts.Dir, "error", err)
		}
	}

	f, err := os.OpenFile(current, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append session log: %w", err)
	}
	return nil
}

// rotate keeps the newest MaxFiles-1 files once the count reaches MaxFiles.
func (j *JSONLJournal) rotate() error {
	files, err := j.list()
	if err != nil {
		return err
	}
	if len(files) < j.opts.MaxFiles {
		return nil
	}
	keep := j.opts.MaxFiles - 1
	if keep < 0 {
		keep = 0
	}
	var errs []error
	for _, file := range files[keep:] {
		if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("rotate session log %s: %w", file.Name, err))
			continue
		}
		j.logger.Info("rotated old session log", "file", file.Name)
	}
	return errors.Join(errs...)
}

// Files never fails: an unreadable directory yields an empty list.
func (j *JSONLJournal) Files(_ context.Context) ([]domain.LogFile, error) {
	files, err := j.list()
	if err != nil {
		j.logger.Warn("list session logs failed", "dir", j.opts.Dir, "error", err)
		return []domain.LogFile{}, nil
	}
	return files, nil
}

func (j *JSONLJournal) list() ([]domain.LogFile, error) {
	entries, err := os.ReadDir(j.opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.LogFile{}, nil
		}
		return nil, fmt.Errorf("read session log dir: %w", err)
	}
	files := make([]domain.LogFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != domain.FileExtension {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.LogFile{
			Path:    filepath.Join(j.opts.Dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(a, b int) bool {
		if !files[a].ModTime.Equal(files[b].ModTime) {
			return files[a].ModTime.After(files[b].ModTime)
		}
		return files[a].Name > files[b].Name
	})
	return files, nil
}

func (j *JSONLJournal) Read(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	j.mu.Lock()
	files, err := j.list()
	j.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []domain.SessionRecord{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := j.readFile(file.Path)
		if err != nil {
			j.logger.Warn("skip unreadable session log", "file", file.Name, "error", err)
			continue
		}
		for i := len(records) - 1; i >= 0; i-- {
			out = append(out, records[i])
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (j *JSONLJournal) readFile(path string) ([]domain.SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := []domain.SessionRecord{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		record, err := domain.UnmarshalLine(line)
		if err != nil {
			j.logger.Debug("skip malformed session line", "file", filepath.Base(path), "line", lineNo, "error", err)
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
