package workspace

import (
	"context"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
)

// SessionMode is the deployment-wide policy for interactive datalab
// sessions.
type SessionMode string

const (
	// SessionModeOff: sessions are disabled; the API refuses start/stop.
	SessionModeOff SessionMode = "off"
	// SessionModeOn: the session is started at workspace creation and the
	// API refuses further start/stop; only out-of-band operator edits
	// change it thereafter.
	SessionModeOn SessionMode = "on"
	// SessionModeAuto: users start sessions on demand; stop comes from the
	// user or an external schedule.
	SessionModeAuto SessionMode = "auto"
)

// SessionAction is a user-initiated session intent.
type SessionAction string

const (
	SessionActionStart SessionAction = "start"
	SessionActionStop  SessionAction = "stop"
)

// InitialSessionStatus is the session state a freshly created workspace
// starts in under the given mode.
func InitialSessionStatus(mode SessionMode) crdv1alpha1.SessionStatus {
	switch mode {
	case SessionModeOn:
		return crdv1alpha1.SessionAlwaysOn
	case SessionModeAuto:
		return crdv1alpha1.SessionOnDemandStopped
	default:
		return crdv1alpha1.SessionDisabled
	}
}

// NextSessionStatus applies a user session intent under the given mode.
// Pure: (mode, current, action) -> next desired status, or ErrForbidden when
// the mode refuses user intents. The current status only matters under
// `auto`, where redundant intents are accepted and simply re-state the
// desired status (retried HTTP calls must be safe).
func NextSessionStatus(mode SessionMode, current crdv1alpha1.SessionStatus, action SessionAction) (crdv1alpha1.SessionStatus, error) {
	switch mode {
	case SessionModeAuto:
		switch action {
		case SessionActionStart:
			return crdv1alpha1.SessionOnDemandRunning, nil
		case SessionActionStop:
			return crdv1alpha1.SessionOnDemandStopped, nil
		}
		return current, ErrForbidden
	default:
		// Both `off` and `on` reject user intents; status then only moves
		// through out-of-band operator edits.
		return current, ErrForbidden
	}
}

// StartSession records a user start intent on the workspace's datalab.
func (s *Service) StartSession(ctx context.Context, name string, user *WorkspaceUser) error {
	return s.sessionIntent(ctx, name, user, SessionActionStart)
}

// StopSession records a user stop intent on the workspace's datalab.
func (s *Service) StopSession(ctx context.Context, name string, user *WorkspaceUser) error {
	return s.sessionIntent(ctx, name, user, SessionActionStop)
}

func (s *Service) sessionIntent(ctx context.Context, name string, user *WorkspaceUser, action SessionAction) error {
	if !user.Has(PermissionViewDatabases) {
		return ErrForbidden
	}
	err := s.datalabs.Mutate(ctx, name, func(dl *crdv1alpha1.Datalab) error {
		next, err := NextSessionStatus(s.sessionMode, dl.Status.Session, action)
		if err != nil {
			return err
		}
		dl.Spec.SessionDesired = next
		return nil
	})
	if err != nil {
		return classify(err)
	}
	goutil.Logger.Infow("recorded session intent",
		"workspace", name,
		"operation", string(action),
		"user", user.Name,
	)
	return nil
}
