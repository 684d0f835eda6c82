package todo

import (
	"strings"

	"cloud.google.com/go/civil"
)

const dateLayout = "[2006-01-02]"

// Day holds one calendar date's sections in display order.
type Day struct {
	Date     civil.Date
	Sections []Section
}

// NewDay returns a day without sections.
func NewDay(date civil.Date) *Day {
	return &Day{Date: date}
}

// ParseDay parses the text of a single day, starting with its date line.
func ParseDay(text string) (Day, error) {
	return parseDayBlock(Block{Line: 1, Lines: splitLines(text)})
}

func parseDayBlock(block Block) (Day, error) {
	i := 0
	for i < len(block.Lines) && strings.TrimSpace(block.Lines[i]) == "" {
		i++
	}
	if i == len(block.Lines) {
		return Day{}, parseErrorf(block.Line, ErrMalformedDate, "missing date line")
	}

	date, err := parseDate(block.Lines[i])
	if err != nil {
		return Day{}, atLine(err, block.Line+i)
	}

	day := Day{Date: date}
	scanner := NewSectionScanner(block.Lines[i+1:], block.Line+i+1)
	for {
		b, ok := scanner.Next()
		if !ok {
			break
		}
		section, err := parseSectionBlock(b)
		if err != nil {
			return Day{}, err
		}
		day.Sections = append(day.Sections, section)
	}
	return day, nil
}

// parseDate accepts exactly "[YYYY-MM-DD]", surrounding whitespace aside.
func parseDate(line string) (civil.Date, error) {
	s := strings.TrimSpace(line)
	if len(s) != len(dateLayout) || s[0] != dateOpen || s[len(s)-1] != ']' {
		return civil.Date{}, parseErrorf(0, ErrMalformedDate, "%q is not a [YYYY-MM-DD] date", s)
	}
	date, err := civil.ParseDate(s[1 : len(s)-1])
	if err != nil {
		return civil.Date{}, parseErrorf(0, ErrMalformedDate, "%q: %v", s, err)
	}
	return date, nil
}

func formatDate(date civil.Date) string {
	return "[" + date.String() + "]"
}

// String returns the day as text: the date line followed by its sections
// separated by blank lines.
func (d Day) String() string {
	sections := make([]string, 0, len(d.Sections))
	for _, section := range d.Sections {
		if text := section.String(); text != "" {
			sections = append(sections, text)
		}
	}
	if len(sections) == 0 {
		return formatDate(d.Date)
	}
	return formatDate(d.Date) + "\n" + strings.Join(sections, "\n\n")
}

// Section returns the first section named name. Later sections with the
// same name are shadowed.
func (d *Day) Section(name string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}

// Equal reports whether both days have the same date and sections.
func (d Day) Equal(other Day) bool {
	if d.Date != other.Date || len(d.Sections) != len(other.Sections) {
		return false
	}
	for i := range d.Sections {
		if !d.Sections[i].Equal(other.Sections[i]) {
			return false
		}
	}
	return true
}

func (d Day) clone() *Day {
	out := &Day{Date: d.Date}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, section := range d.Sections {
			out.Sections[i] = section.clone()
		}
	}
	return out
}
