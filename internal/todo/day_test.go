package todo

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func tasks(texts ...string) []Task {
	out := make([]Task, 0, len(texts))
	for _, text := range texts {
		out = append(out, Task{Text: text})
	}
	return out
}

func TestParseDay(t *testing.T) {
	text := `[2024-03-06]
Section 1
- task 1
- task 3
- task 2

Section 2
- task 2.1
- task 2.2
Section 3
- task 3.2
- task 3.1
`

	got, err := ParseDay(text)
	require.NoError(t, err)
	assert.Equal(t, Day{
		Date: date(2024, 3, 6),
		Sections: []Section{
			{Name: "Section 1", Tasks: tasks("task 1", "task 3", "task 2")},
			{Name: "Section 2", Tasks: tasks("task 2.1", "task 2.2")},
			{Name: "Section 3", Tasks: tasks("task 3.2", "task 3.1")},
		},
	}, got)
}

func TestParseDayWithAnonymousSection(t *testing.T) {
	text := `[2024-03-06]
- task A
- task B
- task C

Section 2
- task 2.1
`

	got, err := ParseDay(text)
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, Section{Tasks: tasks("task A", "task B", "task C")}, got.Sections[0])
	assert.Equal(t, Section{Name: "Section 2", Tasks: tasks("task 2.1")}, got.Sections[1])
}

func TestParseDayOnlyDate(t *testing.T) {
	got, err := ParseDay("\n[2024-03-06]\n\n")
	require.NoError(t, err)
	assert.Equal(t, Day{Date: date(2024, 3, 6)}, got)
}

func TestParseDayMalformedDate(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not bracketed", text: "2024-03-06\n- a"},
		{name: "not padded", text: "[2024-3-6]"},
		{name: "out of range", text: "[2024-02-30]"},
		{name: "month 13", text: "[2024-13-01]"},
		{name: "trailing text", text: "[2024-03-06] monday"},
		{name: "empty", text: "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDay(tt.text)
			require.ErrorIs(t, err, ErrMalformedDate)
		})
	}
}

func TestParseDayReportsLine(t *testing.T) {
	_, err := ParseDay("\n[2024-03-06\n- a")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestDayString(t *testing.T) {
	day := Day{
		Date: date(2024, 3, 7),
		Sections: []Section{
			{Tasks: tasks("task A")},
			{Name: "Done", Tasks: tasks("task 4")},
		},
	}
	assert.Equal(t, "[2024-03-07]\n- task A\n\nDone\n- task 4", day.String())
	assert.Equal(t, "[2024-03-07]", Day{Date: date(2024, 3, 7)}.String())
}

func TestDayRoundTrip(t *testing.T) {
	days := []Day{
		{Date: date(2024, 3, 6)},
		{
			Date: date(2024, 3, 6),
			Sections: []Section{
				{Name: "Section 1", Tasks: tasks("task 1", "task 3")},
				{Name: "Done"},
			},
		},
		{
			Date: date(1999, 12, 31),
			Sections: []Section{
				{Tasks: tasks("task A", "task A")},
				{Name: "Later"},
				{Name: "Done", Tasks: tasks("task 4")},
			},
		},
	}

	for _, day := range days {
		got, err := ParseDay(day.String())
		require.NoError(t, err)
		assert.Equal(t, day, got)
	}
}

func TestDaySectionFirstMatchWins(t *testing.T) {
	day := &Day{
		Date: date(2024, 3, 6),
		Sections: []Section{
			{Name: "Work", Tasks: tasks("first")},
			{Name: "Work", Tasks: tasks("second")},
		},
	}
	got := day.Section("Work")
	require.NotNil(t, got)
	assert.Equal(t, tasks("first"), got.Tasks)
	assert.Nil(t, day.Section("Missing"))
}

func TestDayCloneDoesNotAlias(t *testing.T) {
	day := Day{Date: date(2024, 3, 6), Sections: []Section{{Name: "Work", Tasks: tasks("a")}}}
	clone := day.clone()
	clone.Sections[0].Tasks[0].Text = "changed"
	clone.Sections[0].Name = "Other"

	assert.Equal(t, "a", day.Sections[0].Tasks[0].Text)
	assert.Equal(t, "Work", day.Sections[0].Name)
}
