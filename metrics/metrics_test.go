package metrics

import "testing"

func TestDeriveAPIPrefix(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		wantN int
	}{
		{"/workspaces", "/workspaces", 1},
		{"/workspaces/:name", "/workspaces", 2},
		{"/workspaces/:name/session/start", "/workspaces", 4},
		{"/", "/", 0},
		{"", "/", 0},
	}
	for _, tt := range tests {
		got, n := deriveAPIPrefix(tt.in)
		if got != tt.want || n != tt.wantN {
			t.Errorf("deriveAPIPrefix(%q) = (%q, %d), want (%q, %d)", tt.in, got, n, tt.want, tt.wantN)
		}
	}
}
