package workspace

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
)

// AccessState is the rendered state of a bucket access request. It is
// derived from the timestamps on the entry, never stored.
type AccessState string

const (
	AccessRequested AccessState = "Requested"
	AccessGranted   AccessState = "Granted"
	AccessDenied    AccessState = "Denied"
	AccessRevoked   AccessState = "Revoked"
)

// RenderAccessState derives the observer-facing state of one ledger entry.
// A denial on top of a previous grant reads as a revocation; the timestamps
// in storage are identical for both.
func RenderAccessState(e *crdv1alpha1.BucketAccessRequest) AccessState {
	switch {
	case e.DeniedTimestamp != nil && e.GrantTimestamp != nil:
		return AccessRevoked
	case e.DeniedTimestamp != nil:
		return AccessDenied
	case e.GrantTimestamp != nil:
		return AccessGranted
	default:
		return AccessRequested
	}
}

// findAccessRequest locates the entry for the (workspace, bucket) identity
// key, or -1.
func findAccessRequest(entries []crdv1alpha1.BucketAccessRequest, workspace, bucket string) int {
	for i := range entries {
		if entries[i].Workspace == workspace && entries[i].Bucket == bucket {
			return i
		}
	}
	return -1
}

// RequestAccess upserts the ledger entry for (workspace, bucket). At most
// one entry exists per key: a repeated request refreshes the request
// timestamp instead of appending, and a request after a denial (or a
// revocation) clears the denied timestamp so the entry reads Requested
// again. A still-standing grant is kept; re-requesting a granted bucket is a
// no-op beyond the timestamp refresh. Total and idempotent, so at-least-once
// delivery from retried HTTP calls cannot create duplicate or contradictory
// entries.
func RequestAccess(entries []crdv1alpha1.BucketAccessRequest, workspace, bucket string, permission crdv1alpha1.BucketPermission, now metav1.Time) []crdv1alpha1.BucketAccessRequest {
	i := findAccessRequest(entries, workspace, bucket)
	if i < 0 {
		return append(entries, crdv1alpha1.BucketAccessRequest{
			Workspace:        workspace,
			Bucket:           bucket,
			Permission:       permission,
			RequestTimestamp: now,
		})
	}
	e := &entries[i]
	e.Permission = permission
	e.RequestTimestamp = now
	if e.DeniedTimestamp != nil {
		// Re-request after a denial or a revocation: the previous
		// decision is void, including any grant it revoked.
		e.DeniedTimestamp = nil
		e.GrantTimestamp = nil
	}
	return entries
}

// Grant marks the entry for (workspace, bucket) as granted. A prior denial
// is cleared. Granting an already granted entry refreshes the grant
// timestamp. The caller has already established that the acting user manages
// the bucket-owning workspace; the ledger itself checks nothing.
func Grant(entries []crdv1alpha1.BucketAccessRequest, workspace, bucket string, now metav1.Time) ([]crdv1alpha1.BucketAccessRequest, error) {
	i := findAccessRequest(entries, workspace, bucket)
	if i < 0 {
		return entries, newValidationError("bucket_access_requests",
			"no access request by "+workspace+" for bucket "+bucket)
	}
	entries[i].GrantTimestamp = &now
	entries[i].DeniedTimestamp = nil
	return entries, nil
}

// Deny marks the entry for (workspace, bucket) as denied. An existing grant
// timestamp is deliberately kept: deny-after-grant is the revoke operation,
// and the kept grant timestamp is what distinguishes Revoked from Denied for
// observers.
func Deny(entries []crdv1alpha1.BucketAccessRequest, workspace, bucket string, now metav1.Time) ([]crdv1alpha1.BucketAccessRequest, error) {
	i := findAccessRequest(entries, workspace, bucket)
	if i < 0 {
		return entries, newValidationError("bucket_access_requests",
			"no access request by "+workspace+" for bucket "+bucket)
	}
	entries[i].DeniedTimestamp = &now
	return entries, nil
}
