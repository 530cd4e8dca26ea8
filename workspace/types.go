package workspace

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
)

// Status is the single derived readiness status of a workspace.
type Status string

const (
	StatusProvisioning Status = "provisioning"
	StatusReady        Status = "ready"
	StatusTerminating  Status = "terminating"
	StatusError        Status = "error"
)

// StorageCredentials are the S3 credentials materialized from the workspace
// secret at read time. They are never stored on the custom resource.
type StorageCredentials struct {
	Bucketname string `json:"bucketname"`
	Access     string `json:"access"`
	Secret     string `json:"secret"`
	Endpoint   string `json:"endpoint"`
	Region     string `json:"region"`
}

// RegistryCredentials are the container-registry credentials materialized
// from the registry secret at read time.
type RegistryCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BucketView is one bucket in the aggregated read-model.
type BucketView struct {
	Name              string      `json:"name"`
	Discoverable      bool        `json:"discoverable"`
	CreationTimestamp metav1.Time `json:"creation_timestamp,omitempty"`
}

// AccessRequestView is one ledger entry with its rendered state.
type AccessRequestView struct {
	Workspace        string                       `json:"workspace"`
	Bucket           string                       `json:"bucket"`
	Permission       crdv1alpha1.BucketPermission `json:"permission"`
	State            AccessState                  `json:"state"`
	RequestTimestamp metav1.Time                  `json:"request_timestamp"`
	GrantTimestamp   *metav1.Time                 `json:"grant_timestamp,omitempty"`
	DeniedTimestamp  *metav1.Time                 `json:"denied_timestamp,omitempty"`
}

// StorageView is the aggregated view of the Storage custom resource.
type StorageView struct {
	Buckets        []BucketView        `json:"buckets"`
	AccessRequests []AccessRequestView `json:"bucket_access_requests"`
	// Credentials are only populated for users holding
	// VIEW_BUCKET_CREDENTIALS.
	Credentials     *StorageCredentials `json:"credentials,omitempty"`
	ResourceVersion string              `json:"resource_version"`
}

// MembershipView is one member in the aggregated read-model.
type MembershipView struct {
	Member            string                     `json:"member"`
	Role              crdv1alpha1.MembershipRole `json:"role"`
	CreationTimestamp metav1.Time                `json:"creation_timestamp,omitempty"`
}

// DatabaseView is one database in the aggregated read-model.
type DatabaseView struct {
	Name              string      `json:"name"`
	Storage           string      `json:"storage"`
	CreationTimestamp metav1.Time `json:"creation_timestamp,omitempty"`
}

// DatalabView is the aggregated view of the Datalab custom resource.
type DatalabView struct {
	Memberships     []MembershipView          `json:"memberships"`
	Databases       []DatabaseView            `json:"databases"`
	Session         crdv1alpha1.SessionStatus `json:"session"`
	ResourceVersion string                    `json:"resource_version"`
}

// Workspace is the aggregated read-model. It is derived on every read from
// the two custom resources and never persisted or cached.
type Workspace struct {
	Name              string       `json:"name"`
	Status            Status       `json:"status"`
	CreationTimestamp *metav1.Time `json:"creation_timestamp,omitempty"`
	Storage           *StorageView `json:"storage,omitempty"`
	Datalab           *DatalabView `json:"datalab,omitempty"`
	// ContainerRegistry is only populated for users holding
	// VIEW_BUCKET_CREDENTIALS.
	ContainerRegistry *RegistryCredentials `json:"container_registry,omitempty"`
}
