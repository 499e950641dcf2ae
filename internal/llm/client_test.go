package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   `[{"packageId": "a"}]`,
			want: `[{"packageId": "a"}]`,
		},
		{
			name: "json fence",
			in:   "```json\n[{\"packageId\": \"a\"}]\n```",
			want: `[{"packageId": "a"}]`,
		},
		{
			name: "bare fence",
			in:   "```\n[1, 2]\n```",
			want: "[1, 2]",
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```\n  ",
			want: "{}",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}
