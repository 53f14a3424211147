package models

import "testing"

func TestNewStartStopKeepResponseHasContent(t *testing.T) {
	tests := []struct {
		name  string
		input NewStartStopKeepResponse
		want  bool
	}{
		{"all empty", NewStartStopKeepResponse{}, false},
		{"whitespace only", NewStartStopKeepResponse{Start: "  ", Stop: "\n", Keep: "\t"}, false},
		{"start only", NewStartStopKeepResponse{Start: "weekly standups"}, true},
		{"keep only", NewStartStopKeepResponse{Keep: "customer calls"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.input.HasContent(); got != tc.want {
				t.Errorf("HasContent() = %v, want %v", got, tc.want)
			}
		})
	}
}
