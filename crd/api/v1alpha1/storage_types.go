/*
Copyright 2023.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BucketPermission is the access level a workspace asks for on a bucket.
type BucketPermission string

const (
	BucketPermissionReadWrite BucketPermission = "ReadWrite"
	BucketPermissionReadOnly  BucketPermission = "ReadOnly"
	BucketPermissionWriteOnly BucketPermission = "WriteOnly"
)

// Bucket is one object-storage bucket owned by the workspace.
type Bucket struct {
	Name string `json:"name"`
	// Discoverable buckets are listed to other workspaces so they can
	// request access to them.
	Discoverable      bool        `json:"discoverable,omitempty"`
	CreationTimestamp metav1.Time `json:"creation_timestamp,omitempty"`
}

// BucketAccessRequest records one workspace's request to use a bucket owned
// by this workspace, together with its grant/deny history. At most one entry
// exists per (workspace, bucket) pair; re-requesting updates the entry in
// place. A set grant_timestamp together with a set denied_timestamp means the
// grant was revoked.
type BucketAccessRequest struct {
	// Workspace is the object name of the requesting workspace.
	Workspace string `json:"workspace"`
	// Bucket is the requested bucket, owned by the workspace this entry
	// is stored on.
	Bucket     string           `json:"bucket"`
	Permission BucketPermission `json:"permission"`

	RequestTimestamp metav1.Time  `json:"request_timestamp,omitempty"`
	GrantTimestamp   *metav1.Time `json:"grant_timestamp,omitempty"`
	DeniedTimestamp  *metav1.Time `json:"denied_timestamp,omitempty"`
}

// StorageSpec defines the desired state of the workspace's object storage.
type StorageSpec struct {
	// +optional
	Buckets []Bucket `json:"buckets,omitempty"`
	// +optional
	BucketAccessRequests []BucketAccessRequest `json:"bucket_access_requests,omitempty"`
}

type StoragePhase string

const (
	StoragePhasePending StoragePhase = "Pending"
	StoragePhaseReady   StoragePhase = "Ready"
	StoragePhaseError   StoragePhase = "Error"
)

// StorageStatus is written by the storage provisioning operator.
type StorageStatus struct {
	Phase StoragePhase `json:"phase,omitempty"`
	// SecretName names the secret in the workspace namespace holding the
	// materialized S3 credentials.
	SecretName string `json:"secret_name,omitempty"`
	Message    string `json:"message,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:path=storages

// Storage is the Schema for the storages API
type Storage struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StorageSpec   `json:"spec,omitempty"`
	Status StorageStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// StorageList contains a list of Storage
type StorageList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Storage `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Storage{}, &StorageList{})
}
