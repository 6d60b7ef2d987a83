package anthropic

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			text: `{"filename":"Letter.png"}`,
			want: `{"filename":"Letter.png"}`,
		},
		{
			name: "markdown fenced",
			text: "```json\n{\"filename\":\"Letter.png\"}\n```",
			want: `{"filename":"Letter.png"}`,
		},
		{
			name: "surrounding prose",
			text: `Here is the result: {"events":[]} Let me know if you need more.`,
			want: `{"events":[]}`,
		},
		{
			name: "nested objects keep outer braces",
			text: `{"metadata":{"sender":"ACME"}}`,
			want: `{"metadata":{"sender":"ACME"}}`,
		},
		{
			name:    "no object at all",
			text:    "I could not read the document.",
			wantErr: true,
		},
		{
			name:    "empty response",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if string(got) != tt.want {
				t.Errorf("extractJSON() = %s, want %s", got, tt.want)
			}
			if !json.Valid(got) {
				t.Errorf("extractJSON() returned invalid JSON: %s", got)
			}
		})
	}
}
