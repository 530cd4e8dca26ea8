package workspace

import (
	"testing"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
)

func TestInitialSessionStatus(t *testing.T) {
	tests := []struct {
		mode SessionMode
		want crdv1alpha1.SessionStatus
	}{
		{SessionModeOff, crdv1alpha1.SessionDisabled},
		{SessionModeOn, crdv1alpha1.SessionAlwaysOn},
		{SessionModeAuto, crdv1alpha1.SessionOnDemandStopped},
	}
	for _, tt := range tests {
		if got := InitialSessionStatus(tt.mode); got != tt.want {
			t.Errorf("mode %q: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestNextSessionStatus(t *testing.T) {
	tests := []struct {
		name    string
		mode    SessionMode
		current crdv1alpha1.SessionStatus
		action  SessionAction
		want    crdv1alpha1.SessionStatus
		wantErr bool
	}{
		{"auto start from stopped", SessionModeAuto, crdv1alpha1.SessionOnDemandStopped, SessionActionStart, crdv1alpha1.SessionOnDemandRunning, false},
		{"auto stop from running", SessionModeAuto, crdv1alpha1.SessionOnDemandRunning, SessionActionStop, crdv1alpha1.SessionOnDemandStopped, false},
		// Redundant intents re-state the desired status.
		{"auto start while running", SessionModeAuto, crdv1alpha1.SessionOnDemandRunning, SessionActionStart, crdv1alpha1.SessionOnDemandRunning, false},
		{"auto stop while stopped", SessionModeAuto, crdv1alpha1.SessionOnDemandStopped, SessionActionStop, crdv1alpha1.SessionOnDemandStopped, false},
		{"off refuses start", SessionModeOff, crdv1alpha1.SessionDisabled, SessionActionStart, crdv1alpha1.SessionDisabled, true},
		{"off refuses stop", SessionModeOff, crdv1alpha1.SessionDisabled, SessionActionStop, crdv1alpha1.SessionDisabled, true},
		{"on refuses start", SessionModeOn, crdv1alpha1.SessionAlwaysOn, SessionActionStart, crdv1alpha1.SessionAlwaysOn, true},
		{"on refuses stop", SessionModeOn, crdv1alpha1.SessionAlwaysOn, SessionActionStop, crdv1alpha1.SessionAlwaysOn, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextSessionStatus(tt.mode, tt.current, tt.action)
			if tt.wantErr {
				if !IsForbidden(err) {
					t.Fatalf("expected forbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
