package models

import "testing"

func TestSplitFolderPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"simple", "Bills/Utilities", []string{"Bills", "Utilities"}},
		{"padded segments", "Bills / Utilities", []string{"Bills", "Utilities"}},
		{"single segment", "School", []string{"School"}},
		{"empty", "", []string{UncategorizedFolder}},
		{"whitespace only", "  ", []string{UncategorizedFolder}},
		{"only slashes", "///", []string{UncategorizedFolder}},
		{"empty inner segment dropped", "Bills//Utilities", []string{"Bills", "Utilities"}},
		{"trailing slash", "Bills/", []string{"Bills"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFolderPath(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitFolderPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
