package todo

import "strings"

// DoneSection is the section emptied whenever a new day is started.
const DoneSection = "Done"

// Section is a named group of tasks within a day. The empty name denotes
// the anonymous section a day may open with.
type Section struct {
	Name  string
	Tasks []Task
}

// ParseSection parses the text of a single section.
func ParseSection(text string) (Section, error) {
	return parseSectionBlock(Block{Line: 1, Lines: splitLines(text)})
}

func parseSectionBlock(block Block) (Section, error) {
	var section Section
	first := true
	for i, line := range block.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			if !isTaskLine(line) {
				section.Name = strings.TrimSpace(line)
				continue
			}
		}
		task, err := ParseTask(line)
		if err != nil {
			return Section{}, atLine(err, block.Line+i)
		}
		section.Tasks = append(section.Tasks, task)
	}
	return section, nil
}

// ValidateSectionName reports whether name can be written as a name line.
func ValidateSectionName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return parseErrorf(0, ErrMalformedSection, "%q spans multiple lines", name)
	}
	if name != strings.TrimSpace(name) {
		return parseErrorf(0, ErrMalformedSection, "%q has surrounding whitespace", name)
	}
	if name != "" && (name[0] == taskMarker || name[0] == dateOpen) {
		return parseErrorf(0, ErrMalformedSection, "%q starts with %q", name, name[0])
	}
	return nil
}

// String returns the section as text. The anonymous section has no name
// line.
func (s Section) String() string {
	lines := make([]string, 0, len(s.Tasks)+1)
	if s.Name != "" {
		lines = append(lines, s.Name)
	}
	for _, task := range s.Tasks {
		lines = append(lines, task.String())
	}
	return strings.Join(lines, "\n")
}

// Equal reports whether both sections have the same name and tasks.
func (s Section) Equal(other Section) bool {
	if s.Name != other.Name || len(s.Tasks) != len(other.Tasks) {
		return false
	}
	for i := range s.Tasks {
		if s.Tasks[i] != other.Tasks[i] {
			return false
		}
	}
	return true
}

func (s Section) clone() Section {
	out := Section{Name: s.Name}
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	return out
}

// atLine attaches a line number to a parse error that does not have one.
func atLine(err error, line int) error {
	if pe, ok := err.(*ParseError); ok && pe.Line == 0 {
		return &ParseError{Line: line, Err: pe.Err}
	}
	return err
}
