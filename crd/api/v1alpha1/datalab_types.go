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
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// MembershipRole is the role of a workspace member.
type MembershipRole string

const (
	MembershipRoleOwner       MembershipRole = "owner"
	MembershipRoleAdmin       MembershipRole = "admin"
	MembershipRoleContributor MembershipRole = "contributor"
)

// Membership links one user to the workspace. Exactly one membership carries
// the owner role; it is assigned at creation and never removed through the API.
type Membership struct {
	Member            string         `json:"member"`
	Role              MembershipRole `json:"role"`
	CreationTimestamp metav1.Time    `json:"creation_timestamp,omitempty"`
}

// Database is one database provisioned for the workspace.
type Database struct {
	// Name is unique within the workspace.
	Name              string            `json:"name"`
	Storage           resource.Quantity `json:"storage"`
	CreationTimestamp metav1.Time       `json:"creation_timestamp,omitempty"`
}

// SessionStatus is the lifecycle state of the interactive datalab session.
type SessionStatus string

const (
	SessionDisabled        SessionStatus = "Disabled"
	SessionAlwaysOn        SessionStatus = "AlwaysOn"
	SessionOnDemandStopped SessionStatus = "OnDemand-Stopped"
	SessionOnDemandRunning SessionStatus = "OnDemand-Running"
)

// DatalabSpec defines the desired state of the workspace's datalab.
type DatalabSpec struct {
	// +optional
	Memberships []Membership `json:"memberships,omitempty"`
	// +optional
	Databases []Database `json:"databases,omitempty"`
	// SessionDesired is the session state requested through the API; the
	// session operator reconciles Status.Session towards it.
	SessionDesired SessionStatus `json:"session_desired,omitempty"`
	// DatabaseStorageQuota caps the total database storage of the
	// workspace.
	// +optional
	DatabaseStorageQuota *resource.Quantity `json:"database_storage_quota,omitempty"`
}

type DatalabPhase string

const (
	DatalabPhasePending DatalabPhase = "Pending"
	DatalabPhaseReady   DatalabPhase = "Ready"
	DatalabPhaseError   DatalabPhase = "Error"
)

// DatalabStatus is written by the session provisioning operator.
type DatalabStatus struct {
	Phase   DatalabPhase  `json:"phase,omitempty"`
	Session SessionStatus `json:"session,omitempty"`
	Message string        `json:"message,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:path=datalabs

// Datalab is the Schema for the datalabs API
type Datalab struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DatalabSpec   `json:"spec,omitempty"`
	Status DatalabStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// DatalabList contains a list of Datalab
type DatalabList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Datalab `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Datalab{}, &DatalabList{})
}
