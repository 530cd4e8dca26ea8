package workspace

import (
	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
)

// Aggregate merges the two independently reconciled custom resources into
// one read-model. Pure with respect to its inputs: the status vote is
// re-derived from scratch on every call and no prior result is trusted.
// Either resource may be nil (not yet created, or never requested); a kind
// that was never requested simply drops out of the readiness vote. Returns
// nil when neither resource exists.
func Aggregate(name string, storage *crdv1alpha1.Storage, datalab *crdv1alpha1.Datalab, creds *StorageCredentials, registry *RegistryCredentials) *Workspace {
	if storage == nil && datalab == nil {
		return nil
	}

	ws := &Workspace{
		Name:              name,
		Status:            deriveStatus(storage, datalab),
		ContainerRegistry: registry,
	}

	if storage != nil {
		if ws.CreationTimestamp == nil {
			t := storage.CreationTimestamp
			ws.CreationTimestamp = &t
		}
		view := &StorageView{
			Buckets:         make([]BucketView, 0, len(storage.Spec.Buckets)),
			AccessRequests:  make([]AccessRequestView, 0, len(storage.Spec.BucketAccessRequests)),
			Credentials:     creds,
			ResourceVersion: storage.ResourceVersion,
		}
		for _, b := range storage.Spec.Buckets {
			view.Buckets = append(view.Buckets, BucketView{
				Name:              b.Name,
				Discoverable:      b.Discoverable,
				CreationTimestamp: b.CreationTimestamp,
			})
		}
		for i := range storage.Spec.BucketAccessRequests {
			e := &storage.Spec.BucketAccessRequests[i]
			view.AccessRequests = append(view.AccessRequests, AccessRequestView{
				Workspace:        e.Workspace,
				Bucket:           e.Bucket,
				Permission:       e.Permission,
				State:            RenderAccessState(e),
				RequestTimestamp: e.RequestTimestamp,
				GrantTimestamp:   e.GrantTimestamp,
				DeniedTimestamp:  e.DeniedTimestamp,
			})
		}
		ws.Storage = view
	}

	if datalab != nil {
		if ws.CreationTimestamp == nil {
			t := datalab.CreationTimestamp
			ws.CreationTimestamp = &t
		}
		view := &DatalabView{
			Memberships:     make([]MembershipView, 0, len(datalab.Spec.Memberships)),
			Databases:       make([]DatabaseView, 0, len(datalab.Spec.Databases)),
			Session:         datalab.Status.Session,
			ResourceVersion: datalab.ResourceVersion,
		}
		for _, m := range datalab.Spec.Memberships {
			view.Memberships = append(view.Memberships, MembershipView{
				Member:            m.Member,
				Role:              m.Role,
				CreationTimestamp: m.CreationTimestamp,
			})
		}
		for _, d := range datalab.Spec.Databases {
			view.Databases = append(view.Databases, DatabaseView{
				Name:              d.Name,
				Storage:           d.Storage.String(),
				CreationTimestamp: d.CreationTimestamp,
			})
		}
		ws.Datalab = view
	}

	return ws
}

// deriveStatus runs the order-independent readiness vote over the resources
// that exist. Error anywhere wins, then a deletion marker, then any
// not-ready resource; ready requires every present resource to be ready.
func deriveStatus(storage *crdv1alpha1.Storage, datalab *crdv1alpha1.Datalab) Status {
	terminating := false
	provisioning := false

	if storage != nil {
		if storage.Status.Phase == crdv1alpha1.StoragePhaseError {
			return StatusError
		}
		if storage.DeletionTimestamp != nil {
			terminating = true
		}
		if storage.Status.Phase != crdv1alpha1.StoragePhaseReady {
			provisioning = true
		}
	}
	if datalab != nil {
		if datalab.Status.Phase == crdv1alpha1.DatalabPhaseError {
			return StatusError
		}
		if datalab.DeletionTimestamp != nil {
			terminating = true
		}
		if datalab.Status.Phase != crdv1alpha1.DatalabPhaseReady {
			provisioning = true
		}
	}

	switch {
	case terminating:
		return StatusTerminating
	case provisioning:
		return StatusProvisioning
	default:
		return StatusReady
	}
}
