package todo

import "strings"

// Task is a single line item. Two tasks with the same text are
// indistinguishable.
type Task struct {
	Text string
}

// ParseTask parses a task line such as "- pick up dry cleaning".
func ParseTask(line string) (Task, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] != taskMarker {
		return Task{}, parseErrorf(0, ErrMalformedTask, "%q does not start with %q", line, taskMarker)
	}
	text := strings.TrimLeft(trimmed[1:], " \t")
	return Task{Text: text}, nil
}

// NewTask builds a task from user input, which may omit the marker.
func NewTask(text string) (Task, error) {
	if strings.ContainsAny(text, "\r\n") {
		return Task{}, parseErrorf(0, ErrMalformedTask, "task text spans multiple lines")
	}
	if !isTaskLine(text) {
		text = "- " + text
	}
	task, err := ParseTask(text)
	if err != nil {
		return Task{}, err
	}
	if task.Text == "" {
		return Task{}, parseErrorf(0, ErrMalformedTask, "task text is empty")
	}
	return task, nil
}

// String returns the task line.
func (t Task) String() string {
	return "- " + t.Text
}
