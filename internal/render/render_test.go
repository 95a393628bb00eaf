package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name   string
		tmpl   string
		fields []Field
		want   string
	}{
		{
			name:   "basic",
			tmpl:   "{name} in {time}",
			fields: []Field{F("name", "Algebra"), F("time", "2 days")},
			want:   "Algebra in 2 days",
		},
		{
			name:   "unknown placeholder kept",
			tmpl:   "{name} at {room} {time}",
			fields: []Field{F("name", "Algebra"), F("time", "2 days")},
			want:   "Algebra at {room} 2 days",
		},
		{
			name:   "repeated placeholder",
			tmpl:   "{name}/{name}",
			fields: []Field{F("name", "X")},
			want:   "X/X",
		},
		{
			name:   "value with braces is not re-expanded",
			tmpl:   "{name} in {time}",
			fields: []Field{F("name", "Weird {time} class"), F("time", "1 hour")},
			want:   "Weird {time} class in 1 hour",
		},
		{
			name:   "no placeholders",
			tmpl:   "plain text",
			fields: []Field{F("name", "ignored")},
			want:   "plain text",
		},
		{
			name: "no fields",
			tmpl: "{name}",
			want: "{name}",
		},
		{
			name:   "empty value",
			tmpl:   "[{points}]",
			fields: []Field{F("points", "")},
			want:   "[]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.tmpl, tc.fields))
		})
	}
}
