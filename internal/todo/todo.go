package todo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/civil"
)

// DefaultFile is the log file used when no path is given.
const DefaultFile = "todo.txt"

// SaveResult tells the caller what Save did.
type SaveResult int

const (
	// SaveWritten means the file was replaced with the in-memory log.
	SaveWritten SaveResult = iota + 1
	// SaveUpToDate means the file already matched and nothing was written.
	SaveUpToDate
)

func (r SaveResult) String() string {
	switch r {
	case SaveWritten:
		return "written"
	case SaveUpToDate:
		return "up to date"
	default:
		return fmt.Sprintf("SaveResult(%d)", int(r))
	}
}

// Todo is the whole log: one Day per date, backed by a text file.
// The zero value is an empty log with no file path.
type Todo struct {
	days map[civil.Date]*Day
	path string
}

// New returns an empty log backed by path.
func New(path string) *Todo {
	return &Todo{days: make(map[civil.Date]*Day), path: path}
}

// Parse parses a whole log. When a date appears more than once the last
// occurrence wins.
func Parse(text string) (*Todo, error) {
	t := New("")
	scanner := NewDayScanner(text)
	for {
		block, ok := scanner.Next()
		if !ok {
			break
		}
		day, err := parseDayBlock(block)
		if err != nil {
			return nil, err
		}
		t.days[day.Date] = &day
	}
	return t, nil
}

// Load reads and parses the log at path. It refuses a log whose latest day
// is after today.
func Load(path string, today civil.Date) (*Todo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse todo file %s: %w", path, err)
	}
	if err := t.checkSkew(today); err != nil {
		return nil, err
	}
	t.path = path
	return t, nil
}

// Open loads the log at path, or returns an empty log bound to path when the
// file does not exist yet. An empty path selects DefaultFile.
func Open(path string, today civil.Date) (*Todo, error) {
	if path == "" {
		path = DefaultFile
	}
	t, err := Load(path, today)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	return t, err
}

// Path returns the backing file path.
func (t *Todo) Path() string {
	return t.path
}

// Len returns the number of days.
func (t *Todo) Len() int {
	return len(t.days)
}

// Day returns a copy of the day for date.
func (t *Todo) Day(date civil.Date) (Day, bool) {
	day, ok := t.days[date]
	if !ok {
		return Day{}, false
	}
	return *day.clone(), true
}

// Days returns copies of all days, latest first.
func (t *Todo) Days() []Day {
	days := make([]Day, 0, len(t.days))
	for _, date := range t.dates() {
		days = append(days, *t.days[date].clone())
	}
	return days
}

// LastDay returns a copy of the latest day.
func (t *Todo) LastDay() (Day, bool) {
	last := t.lastDay()
	if last == nil {
		return Day{}, false
	}
	return *last.clone(), true
}

func (t *Todo) lastDay() *Day {
	var last *Day
	for _, day := range t.days {
		if last == nil || day.Date.After(last.Date) {
			last = day
		}
	}
	return last
}

// dates returns the dates in descending order.
func (t *Todo) dates() []civil.Date {
	dates := make([]civil.Date, 0, len(t.days))
	for date := range t.days {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})
	return dates
}

func (t *Todo) checkSkew(today civil.Date) error {
	if last := t.lastDay(); last != nil && last.Date.After(today) {
		return fmt.Errorf("%w: latest day %s, today %s", ErrClockSkew, last.Date, today)
	}
	return nil
}

// AdvanceToToday starts today's day as a copy of the latest day with its
// Done section emptied. It does nothing if today already exists.
func (t *Todo) AdvanceToToday(today civil.Date) {
	if t.days == nil {
		t.days = make(map[civil.Date]*Day)
	}
	if _, ok := t.days[today]; ok {
		return
	}

	next := NewDay(today)
	if last := t.lastDay(); last != nil {
		next = last.clone()
		next.Date = today
	}

	if done := next.Section(DoneSection); done != nil {
		done.Tasks = nil
	} else {
		next.Sections = append(next.Sections, Section{Name: DoneSection})
	}
	t.days[today] = next
}

// Add appends a task to section in today's day, creating the day and the
// section as needed. New sections go last; the anonymous section (empty
// name) can only open a day and is created first. The log is left untouched
// if text or section is not valid.
func (t *Todo) Add(text, section string, today civil.Date) error {
	task, err := NewTask(text)
	if err != nil {
		return err
	}
	if err := ValidateSectionName(section); err != nil {
		return err
	}

	t.AdvanceToToday(today)
	day := t.days[today]

	target := day.Section(section)
	if target == nil {
		if section == "" {
			day.Sections = append([]Section{{}}, day.Sections...)
			target = &day.Sections[0]
		} else {
			day.Sections = append(day.Sections, Section{Name: section})
			target = &day.Sections[len(day.Sections)-1]
		}
	}
	target.Tasks = append(target.Tasks, task)
	return nil
}

// Save writes the log to its file unless the file already holds the same
// content. Days found only in the file are merged in first, so a save never
// drops days written by an earlier run. A date present both in memory and in
// the file keeps the in-memory day as a whole: tasks that only exist in the
// file's copy of that day are dropped, so callers wanting to extend the file
// should start from Open or Load. The log is left unchanged when Save fails.
//
// Save holds no lock: concurrent saves from two processes race and the last
// one wins.
func (t *Todo) Save(today civil.Date) (SaveResult, error) {
	if t.path == "" {
		return 0, errors.New("save todo file: no file path")
	}
	onDisk, err := Load(t.path, today)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		onDisk = New(t.path)
	case err != nil:
		return 0, err
	}
	if err := t.checkSkew(today); err != nil {
		return 0, err
	}

	merged := &Todo{days: make(map[civil.Date]*Day, len(t.days)+len(onDisk.days)), path: t.path}
	for date, day := range t.days {
		merged.days[date] = day
	}
	for date, day := range onDisk.days {
		if _, ok := merged.days[date]; !ok {
			merged.days[date] = day.clone()
		}
	}
	if merged.Equal(onDisk) {
		t.days = merged.days
		return SaveUpToDate, nil
	}

	if err := writeFileAtomic(t.path, []byte(merged.String()+"\n")); err != nil {
		return 0, err
	}
	t.days = merged.days
	return SaveWritten, nil
}

// Equal reports whether both logs hold the same days.
func (t *Todo) Equal(other *Todo) bool {
	if len(t.days) != len(other.days) {
		return false
	}
	for date, day := range t.days {
		o, ok := other.days[date]
		if !ok || !day.Equal(*o) {
			return false
		}
	}
	return true
}

// String returns the log as text, latest day first.
func (t *Todo) String() string {
	days := make([]string, 0, len(t.days))
	for _, date := range t.dates() {
		days = append(days, t.days[date].String())
	}
	return strings.Join(days, "\n\n")
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("write todo file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write todo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace todo file: %w", err)
	}
	return nil
}
