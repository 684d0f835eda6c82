package todo

import "strings"

const (
	taskMarker = '-'
	dateOpen   = '['
)

// Block is a run of raw lines belonging to one day or one section.
type Block struct {
	Line  int // 1-based line number of Lines[0] in the scanned text
	Lines []string
}

// Text joins the block lines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Scanner segments lines into blocks. A block opens at a line accepted by
// opens and extends up to, not including, the next line accepted by starts.
// Lines before the first opening line are skipped. Scanners are forward-only
// and cannot be restarted.
type Scanner struct {
	lines  []string
	pos    int
	offset int
	starts func(string) bool
	opens  func(string) bool
}

// NewDayScanner returns a scanner yielding one block per day in text.
func NewDayScanner(text string) *Scanner {
	return &Scanner{
		lines:  splitLines(text),
		offset: 1,
		starts: isDayStart,
		opens:  isDayStart,
	}
}

// NewSectionScanner returns a scanner yielding one block per section in the
// lines of a day, excluding its date line. firstLine is the line number of
// lines[0] and is only used to annotate blocks.
func NewSectionScanner(lines []string, firstLine int) *Scanner {
	return &Scanner{
		lines:  lines,
		offset: firstLine,
		starts: isSectionStart,
		opens:  opensSection,
	}
}

// Next returns the next block, or false once the lines are exhausted.
func (s *Scanner) Next() (Block, bool) {
	for s.pos < len(s.lines) && !s.opens(s.lines[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.lines) {
		return Block{}, false
	}

	block := Block{Line: s.pos + s.offset, Lines: []string{s.lines[s.pos]}}
	s.pos++
	for s.pos < len(s.lines) && !s.starts(s.lines[s.pos]) {
		block.Lines = append(block.Lines, s.lines[s.pos])
		s.pos++
	}
	return block, true
}

// byteOrderMark is ignored at the start of the text.
const byteOrderMark = "\ufeff"

func splitLines(text string) []string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline does not start another line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func firstChar(line string) (byte, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	return line[0], true
}

func isDayStart(line string) bool {
	c, ok := firstChar(line)
	return ok && c == dateOpen
}

func isTaskLine(line string) bool {
	c, ok := firstChar(line)
	return ok && c == taskMarker
}

func isSectionStart(line string) bool {
	c, ok := firstChar(line)
	return ok && c != taskMarker && c != dateOpen
}

// opensSection also accepts a task line so that a day may begin with the
// anonymous section. After the first block the scanner only ever stops on
// section starts, so this only matters for the first block.
func opensSection(line string) bool {
	return isSectionStart(line) || isTaskLine(line)
}
