package workspace

import (
	"context"

	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
)

// MembershipEdit adds one member.
type MembershipEdit struct {
	Member string                     `json:"member"`
	Role   crdv1alpha1.MembershipRole `json:"role"`
}

// DatabaseEdit adds one database.
type DatabaseEdit struct {
	Name    string `json:"name"`
	Storage string `json:"storage"`
}

// BucketEdit adds one extra bucket.
type BucketEdit struct {
	Name         string `json:"name"`
	Discoverable bool   `json:"discoverable"`
}

// Ledger actions a PUT may carry.
const (
	AccessActionRequest = "request"
	AccessActionGrant   = "grant"
	AccessActionDeny    = "deny"
)

// AccessRequestPatch is one ledger mutation. `request` targets a bucket of
// another workspace on behalf of the edited workspace; `grant` and `deny`
// decide a request against a bucket the edited workspace owns.
type AccessRequestPatch struct {
	Action     string                       `json:"action"`
	Workspace  string                       `json:"workspace"`
	Bucket     string                       `json:"bucket"`
	Permission crdv1alpha1.BucketPermission `json:"permission,omitempty"`
}

// WorkspaceEdit is the PUT payload. Every section is optional; an empty edit
// is a no-op.
type WorkspaceEdit struct {
	AddMemberships            []MembershipEdit     `json:"add_memberships,omitempty"`
	AddDatabases              []DatabaseEdit       `json:"add_databases,omitempty"`
	AddBuckets                []BucketEdit         `json:"add_buckets,omitempty"`
	PatchBucketAccessRequests []AccessRequestPatch `json:"patch_bucket_access_requests,omitempty"`
}

// Edit applies a WorkspaceEdit as one all-or-nothing call: every section is
// validated against a fresh read before any resource is written, so a
// malformed entry anywhere fails the whole call with a 422 and no partial
// application.
func (s *Service) Edit(ctx context.Context, name string, user *WorkspaceUser, edit WorkspaceEdit) error {
	if len(edit.AddMemberships) > 0 && !user.Has(PermissionManageMembers) {
		return ErrForbidden
	}
	if (len(edit.AddDatabases) > 0 || len(edit.AddBuckets) > 0 || len(edit.PatchBucketAccessRequests) > 0) &&
		!user.Has(PermissionManageBuckets) {
		return ErrForbidden
	}

	storage, found, err := s.storages.GetOrNil(ctx, name)
	if err != nil {
		return classify(err)
	}
	if !found {
		return &NotFoundError{Name: name}
	}
	datalab, _, err := s.datalabs.GetOrNil(ctx, name)
	if err != nil {
		return classify(err)
	}

	verr := &ValidationError{}
	memberships := validateMemberships(verr, datalab, edit.AddMemberships)
	databases := validateDatabases(verr, datalab, edit.AddDatabases)
	buckets := validateBuckets(verr, name, storage, edit.AddBuckets)
	decisions, requests := s.splitAccessPatches(ctx, verr, name, storage, edit.PatchBucketAccessRequests)
	if len(verr.Fields) > 0 {
		return verr
	}

	now := metav1.Now()

	if len(buckets) > 0 || len(decisions) > 0 {
		err := s.storages.Mutate(ctx, name, func(st *crdv1alpha1.Storage) error {
			return applyStorageEdit(st, name, buckets, decisions, now)
		})
		if err != nil {
			return classify(err)
		}
	}

	for owner, reqs := range requests {
		owner, reqs := owner, reqs
		err := s.storages.Mutate(ctx, owner, func(st *crdv1alpha1.Storage) error {
			for _, r := range reqs {
				st.Spec.BucketAccessRequests = RequestAccess(
					st.Spec.BucketAccessRequests, name, r.Bucket, r.Permission, now)
			}
			return nil
		})
		if err != nil {
			return classify(err)
		}
	}

	if len(memberships) > 0 || len(databases) > 0 {
		err := s.datalabs.Mutate(ctx, name, func(dl *crdv1alpha1.Datalab) error {
			return applyDatalabEdit(dl, memberships, databases, now)
		})
		if err != nil {
			return classify(err)
		}
	}

	goutil.Logger.Infow("edited workspace",
		"workspace", name,
		"operation", "edit",
		"user", user.Name,
		"memberships", len(memberships),
		"databases", len(databases),
		"buckets", len(buckets),
		"access_patches", len(edit.PatchBucketAccessRequests),
	)
	return nil
}

func validateMemberships(verr *ValidationError, datalab *crdv1alpha1.Datalab, adds []MembershipEdit) []MembershipEdit {
	out := make([]MembershipEdit, 0, len(adds))
	for _, m := range adds {
		if m.Member == "" {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_memberships", Message: "member must not be empty"})
			continue
		}
		switch m.Role {
		case crdv1alpha1.MembershipRoleAdmin, crdv1alpha1.MembershipRoleContributor:
		case crdv1alpha1.MembershipRoleOwner:
			// The owner is assigned at creation and there is exactly one.
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_memberships", Message: "the owner role cannot be assigned"})
			continue
		default:
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_memberships", Message: "unknown role " + string(m.Role)})
			continue
		}
		if datalab == nil {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_memberships", Message: "workspace has no datalab"})
			continue
		}
		out = append(out, m)
	}
	return out
}

func validateDatabases(verr *ValidationError, datalab *crdv1alpha1.Datalab, adds []DatabaseEdit) []DatabaseEdit {
	seen := map[string]bool{}
	if datalab != nil {
		for _, d := range datalab.Spec.Databases {
			seen[d.Name] = true
		}
	}
	out := make([]DatabaseEdit, 0, len(adds))
	for _, d := range adds {
		if d.Name == "" {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_databases", Message: "database name must not be empty"})
			continue
		}
		if seen[d.Name] {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_databases", Message: "duplicate database name " + d.Name})
			continue
		}
		seen[d.Name] = true
		if _, err := resource.ParseQuantity(d.Storage); err != nil {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_databases", Message: "invalid storage quantity " + d.Storage})
			continue
		}
		if datalab == nil {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_databases", Message: "workspace has no datalab"})
			continue
		}
		out = append(out, d)
	}
	return out
}

func validateBuckets(verr *ValidationError, name string, storage *crdv1alpha1.Storage, adds []BucketEdit) []BucketEdit {
	seen := map[string]bool{}
	for _, b := range storage.Spec.Buckets {
		seen[b.Name] = true
	}
	out := make([]BucketEdit, 0, len(adds))
	for _, b := range adds {
		if err := ValidateBucketName(name, b.Name); err != nil {
			verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
			continue
		}
		if seen[b.Name] {
			verr.Fields = append(verr.Fields, FieldError{
				Field: "add_buckets", Message: "bucket " + b.Name + " already exists"})
			continue
		}
		seen[b.Name] = true
		out = append(out, b)
	}
	return out
}

// splitAccessPatches validates the ledger patches and partitions them into
// decisions on this workspace's own ledger and requests grouped by the
// owning workspace of the target bucket.
func (s *Service) splitAccessPatches(ctx context.Context, verr *ValidationError, name string, storage *crdv1alpha1.Storage, patches []AccessRequestPatch) ([]AccessRequestPatch, map[string][]AccessRequestPatch) {
	var decisions []AccessRequestPatch
	requests := map[string][]AccessRequestPatch{}

	ownBuckets := map[string]bool{}
	for _, b := range storage.Spec.Buckets {
		ownBuckets[b.Name] = true
	}

	for _, p := range patches {
		switch p.Action {
		case AccessActionGrant, AccessActionDeny:
			// Only the bucket-owning workspace decides.
			if !ownBuckets[p.Bucket] {
				verr.Fields = append(verr.Fields, FieldError{
					Field:   "patch_bucket_access_requests",
					Message: "bucket " + p.Bucket + " is not owned by " + name})
				continue
			}
			decisions = append(decisions, p)
		case AccessActionRequest:
			if !IsS3BucketName(p.Bucket) {
				verr.Fields = append(verr.Fields, FieldError{
					Field:   "patch_bucket_access_requests",
					Message: "invalid bucket name " + p.Bucket})
				continue
			}
			if ownBuckets[p.Bucket] {
				verr.Fields = append(verr.Fields, FieldError{
					Field:   "patch_bucket_access_requests",
					Message: "bucket " + p.Bucket + " already belongs to " + name})
				continue
			}
			switch p.Permission {
			case crdv1alpha1.BucketPermissionReadWrite,
				crdv1alpha1.BucketPermissionReadOnly,
				crdv1alpha1.BucketPermissionWriteOnly:
			default:
				verr.Fields = append(verr.Fields, FieldError{
					Field:   "patch_bucket_access_requests",
					Message: "unknown permission " + string(p.Permission)})
				continue
			}
			owner, err := s.bucketOwner(ctx, p.Bucket)
			if err != nil {
				verr.Fields = append(verr.Fields, FieldError{
					Field:   "patch_bucket_access_requests",
					Message: "bucket " + p.Bucket + " does not exist"})
				continue
			}
			requests[owner] = append(requests[owner], p)
		default:
			verr.Fields = append(verr.Fields, FieldError{
				Field:   "patch_bucket_access_requests",
				Message: "unknown action " + p.Action})
		}
	}
	return decisions, requests
}

// bucketOwner resolves the workspace owning a bucket by scanning the Storage
// resources in the namespace.
func (s *Service) bucketOwner(ctx context.Context, bucket string) (string, error) {
	storages, err := s.storages.List(ctx)
	if err != nil {
		return "", classify(err)
	}
	for _, st := range storages {
		for _, b := range st.Spec.Buckets {
			if b.Name == bucket {
				return st.Name, nil
			}
		}
	}
	return "", &NotFoundError{Name: bucket}
}

func applyStorageEdit(st *crdv1alpha1.Storage, name string, buckets []BucketEdit, decisions []AccessRequestPatch, now metav1.Time) error {
	for _, b := range buckets {
		// Re-check against the freshly read resource; a concurrent edit
		// may have taken the name since validation.
		if err := ValidateBucketName(name, b.Name); err != nil {
			return err
		}
		for _, existing := range st.Spec.Buckets {
			if existing.Name == b.Name {
				return &ConflictError{Reason: "bucket " + b.Name + " already exists"}
			}
		}
		st.Spec.Buckets = append(st.Spec.Buckets, crdv1alpha1.Bucket{
			Name:              b.Name,
			Discoverable:      b.Discoverable,
			CreationTimestamp: now,
		})
	}
	for _, d := range decisions {
		var err error
		switch d.Action {
		case AccessActionGrant:
			st.Spec.BucketAccessRequests, err = Grant(st.Spec.BucketAccessRequests, d.Workspace, d.Bucket, now)
		case AccessActionDeny:
			st.Spec.BucketAccessRequests, err = Deny(st.Spec.BucketAccessRequests, d.Workspace, d.Bucket, now)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyDatalabEdit(dl *crdv1alpha1.Datalab, memberships []MembershipEdit, databases []DatabaseEdit, now metav1.Time) error {
	for _, m := range memberships {
		exists := false
		for i := range dl.Spec.Memberships {
			if dl.Spec.Memberships[i].Member == m.Member {
				// Re-adding updates the role in place; the owner stays
				// untouched.
				if dl.Spec.Memberships[i].Role != crdv1alpha1.MembershipRoleOwner {
					dl.Spec.Memberships[i].Role = m.Role
				}
				exists = true
				break
			}
		}
		if !exists {
			dl.Spec.Memberships = append(dl.Spec.Memberships, crdv1alpha1.Membership{
				Member:            m.Member,
				Role:              m.Role,
				CreationTimestamp: now,
			})
		}
	}
	for _, d := range databases {
		for _, existing := range dl.Spec.Databases {
			if existing.Name == d.Name {
				return &ConflictError{Reason: "database " + d.Name + " already exists"}
			}
		}
		quantity := resource.MustParse(d.Storage)
		dl.Spec.Databases = append(dl.Spec.Databases, crdv1alpha1.Database{
			Name:              d.Name,
			Storage:           quantity,
			CreationTimestamp: now,
		})
	}
	return nil
}
