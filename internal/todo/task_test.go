package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{name: "marker and space", line: "- pick up dry cleaning", want: "pick up dry cleaning"},
		{name: "no space after marker", line: "-pick up", want: "pick up"},
		{name: "indented with tab", line: "  -\t call mom  ", want: "call mom"},
		{name: "interior spacing kept", line: "- a  -  b", want: "a  -  b"},
		{name: "bare marker", line: "-", want: ""},
		{name: "crlf", line: "- task\r", want: "task"},
		{name: "no marker", line: "pick up", wantErr: true},
		{name: "date line", line: "[2024-03-06]", wantErr: true},
		{name: "empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTask(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedTask)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestTaskRoundTrip(t *testing.T) {
	for _, text := range []string{"pick up dry cleaning", "a - b", "[not a date]", "tabs\tinside", "Done"} {
		task := Task{Text: text}
		got, err := ParseTask(task.String())
		require.NoError(t, err)
		assert.Equal(t, task, got)
	}
}

func TestNewTask(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "plain text", text: "added task", want: "added task"},
		{name: "with marker", text: "- added task", want: "added task"},
		{name: "section-like text", text: "Section 1", want: "Section 1"},
		{name: "empty", text: "", wantErr: true},
		{name: "only marker", text: "- ", wantErr: true},
		{name: "multi-line", text: "one\ntwo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTask(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedTask)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}
