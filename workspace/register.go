package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
)

const registrationTimeout = 5 * time.Minute

// Register enqueues a product-registration job for the workspace and returns
// immediately; the registration itself runs outside the request. The job
// posts the aggregated workspace document to the configured registration
// endpoint, with the worker's retry budget.
func (s *Service) Register(ctx context.Context, name string, user *WorkspaceUser) error {
	ws, err := s.Get(ctx, name, user)
	if err != nil {
		return err
	}

	err = s.worker.CreateJob(registrationTimeout, name, func(log chan<- string) error {
		return s.registerProduct(ws, log)
	})
	if err != nil {
		// A registration for this workspace is already in flight;
		// enqueueing is idempotent from the caller's point of view.
		goutil.Logger.Infow("registration already running",
			"workspace", name,
			"operation", "register",
		)
		return nil
	}

	goutil.Logger.Infow("enqueued product registration",
		"workspace", name,
		"operation", "register",
		"user", user.Name,
	)
	return nil
}

// RegistrationLog returns the log of the latest registration job, or empty
// if none ran since startup.
func (s *Service) RegistrationLog(name string) string {
	job := s.worker.GetJob(name)
	if job == nil {
		return ""
	}
	return job.GetLog()
}

func (s *Service) registerProduct(ws *Workspace, log chan<- string) error {
	if s.registrationURL == "" {
		log <- fmt.Sprintf("no registration endpoint configured, skipping registration of %s\n", ws.Name)
		return nil
	}

	body, err := json.Marshal(ws)
	if err != nil {
		log <- fmt.Sprintf("failed to encode workspace %s: %v\n", ws.Name, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.registrationURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log <- fmt.Sprintf("registration of %s failed: %v\n", ws.Name, err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log <- fmt.Sprintf("registration of %s rejected: %s\n", ws.Name, resp.Status)
		return fmt.Errorf("registration endpoint returned %s", resp.Status)
	}

	log <- fmt.Sprintf("registered %s\n", ws.Name)
	return nil
}
