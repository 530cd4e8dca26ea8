// Package workspace implements the workspace read-model aggregation, the
// cross-workspace bucket-sharing ledger and the permission-gated mutations
// on top of the Storage and Datalab custom resources.
package workspace

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
	"github.com/eoplatform/workspace-api/go-pkg/datastore"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
	"github.com/eoplatform/workspace-api/go-pkg/worker"
)

// Service exposes every workspace operation. It holds no workspace state:
// all state is read from and written to the cluster per call, and concurrent
// writers are arbitrated purely by resource-version conflicts.
type Service struct {
	storages *datastore.CRStore[*crdv1alpha1.Storage]
	datalabs *datastore.CRStore[*crdv1alpha1.Datalab]
	kube     client.Client

	worker *worker.Worker

	prefix          string
	sessionMode     SessionMode
	registrationURL string
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// Namespace the Storage and Datalab resources live in.
	Namespace string
	// Prefix for derived workspace object names, e.g. "ws".
	Prefix string
	// SessionMode is the deployment-wide session policy.
	SessionMode SessionMode
	// RegistrationURL receives product registrations; empty disables the
	// outbound call and registration jobs only log.
	RegistrationURL string
}

func NewService(c client.Client, opts ServiceOptions) *Service {
	storageExample := &crdv1alpha1.Storage{
		TypeMeta: metav1.TypeMeta{
			APIVersion: crdv1alpha1.GroupVersion.String(),
			Kind:       "Storage",
		},
	}
	datalabExample := &crdv1alpha1.Datalab{
		TypeMeta: metav1.TypeMeta{
			APIVersion: crdv1alpha1.GroupVersion.String(),
			Kind:       "Datalab",
		},
	}
	return &Service{
		storages:        datastore.NewCRStore[*crdv1alpha1.Storage](opts.Namespace, storageExample, c),
		datalabs:        datastore.NewCRStore[*crdv1alpha1.Datalab](opts.Namespace, datalabExample, c),
		kube:            c,
		worker:          worker.New(),
		prefix:          opts.Prefix,
		sessionMode:     opts.SessionMode,
		registrationURL: opts.RegistrationURL,
	}
}

// SessionMode returns the deployment-wide session policy the service was
// configured with.
func (s *Service) SessionMode() SessionMode {
	return s.sessionMode
}

// WorkspaceCreate is the creation payload.
type WorkspaceCreate struct {
	PreferredName string `json:"preferred_name"`
	DefaultOwner  string `json:"default_owner"`
}

// Create derives the object name, checks it is free and writes the desired
// Storage and Datalab resources. It returns as soon as both are written;
// provisioning is asynchronous and observed later through Get.
func (s *Service) Create(ctx context.Context, data WorkspaceCreate) (string, error) {
	if data.DefaultOwner == "" {
		return "", newValidationError("default_owner", "default owner is required")
	}

	name := ToObjectName(s.prefix, data.PreferredName)

	if _, found, err := s.storages.GetOrNil(ctx, name); err != nil {
		return "", classify(err)
	} else if found {
		return "", &ConflictError{Reason: "workspace " + name + " already exists"}
	}

	now := metav1.Now()
	storage := &crdv1alpha1.Storage{
		Spec: crdv1alpha1.StorageSpec{
			// The default bucket carries the workspace's own object
			// name; extra buckets are prefixed with it.
			Buckets: []crdv1alpha1.Bucket{{
				Name:              name,
				CreationTimestamp: now,
			}},
		},
	}
	if err := s.storages.Create(ctx, name, storage); err != nil {
		if apierrors.IsAlreadyExists(err) {
			return "", &ConflictError{Reason: "workspace " + name + " already exists"}
		}
		return "", classify(err)
	}

	datalab := &crdv1alpha1.Datalab{
		Spec: crdv1alpha1.DatalabSpec{
			Memberships: []crdv1alpha1.Membership{{
				Member:            data.DefaultOwner,
				Role:              crdv1alpha1.MembershipRoleOwner,
				CreationTimestamp: now,
			}},
			SessionDesired: InitialSessionStatus(s.sessionMode),
		},
	}
	if err := s.datalabs.Create(ctx, name, datalab); err != nil {
		return "", classify(err)
	}

	goutil.Logger.Infow("created workspace",
		"workspace", name,
		"operation", "create",
		"owner", data.DefaultOwner,
	)

	return name, nil
}

// Get aggregates the two custom resources into the read-model. Storage
// credentials are only materialized for users holding
// VIEW_BUCKET_CREDENTIALS.
func (s *Service) Get(ctx context.Context, name string, user *WorkspaceUser) (*Workspace, error) {
	storage, _, err := s.storages.GetOrNil(ctx, name)
	if err != nil {
		return nil, classify(err)
	}
	datalab, _, err := s.datalabs.GetOrNil(ctx, name)
	if err != nil {
		return nil, classify(err)
	}

	var creds *StorageCredentials
	var registry *RegistryCredentials
	if user.Has(PermissionViewBucketCredentials) {
		if storage != nil {
			creds = s.fetchCredentials(ctx, name, storage)
		}
		registry = s.fetchRegistryCredentials(ctx, name)
	}

	ws := Aggregate(name, storage, datalab, creds, registry)
	if ws == nil {
		return nil, &NotFoundError{Name: name}
	}

	// The VIEW permissions gate what the read-model exposes, not whether
	// the workspace itself is visible.
	if ws.Storage != nil && !user.Has(PermissionViewBuckets) {
		ws.Storage.Buckets = nil
		ws.Storage.AccessRequests = nil
	}
	if ws.Datalab != nil {
		if !user.Has(PermissionViewMembers) {
			ws.Datalab.Memberships = nil
		}
		if !user.Has(PermissionViewDatabases) {
			ws.Datalab.Databases = nil
		}
	}
	return ws, nil
}

// fetchCredentials materializes the S3 credentials from the secret the
// storage operator wrote. A missing or half-written secret only means the
// credentials are not available yet, never an error.
func (s *Service) fetchCredentials(ctx context.Context, name string, storage *crdv1alpha1.Storage) *StorageCredentials {
	secretName := storage.Status.SecretName
	if secretName == "" {
		return nil
	}
	secret := &corev1.Secret{}
	err := s.kube.Get(ctx, client.ObjectKey{Namespace: name, Name: secretName}, secret)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			goutil.Logger.Warnw("failed to read workspace credentials secret",
				"workspace", name,
				"secret", secretName,
				"error", err,
			)
		}
		return nil
	}

	get := func(key, fallback string) string {
		if v, ok := secret.Data[key]; ok {
			return string(v)
		}
		return string(secret.Data[fallback])
	}
	return &StorageCredentials{
		Bucketname: name,
		Access:     get("access", "AWS_ACCESS_KEY_ID"),
		Secret:     get("secret", "AWS_SECRET_ACCESS_KEY"),
		Endpoint:   get("endpoint", "AWS_ENDPOINT_URL"),
		Region:     get("region", "AWS_REGION"),
	}
}

// registryCredentialsSecretName is the secret in the workspace namespace
// holding the container-registry credentials.
const registryCredentialsSecretName = "container-registry"

// fetchRegistryCredentials materializes the container-registry credentials
// from the registry secret in the workspace namespace. Like the storage
// secret, a missing or incomplete one means the credentials are not
// available, never an error.
func (s *Service) fetchRegistryCredentials(ctx context.Context, name string) *RegistryCredentials {
	secret := &corev1.Secret{}
	err := s.kube.Get(ctx, client.ObjectKey{Namespace: name, Name: registryCredentialsSecretName}, secret)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			goutil.Logger.Warnw("failed to read container registry secret",
				"workspace", name,
				"secret", registryCredentialsSecretName,
				"error", err,
			)
		}
		return nil
	}

	username, okU := secret.Data["username"]
	password, okP := secret.Data["password"]
	if !okU || !okP {
		goutil.Logger.Warnw("container registry secret misses username or password",
			"workspace", name,
			"secret", registryCredentialsSecretName,
		)
		return nil
	}
	return &RegistryCredentials{
		Username: string(username),
		Password: string(password),
	}
}

// Delete marks both custom resources for deletion. Bucket data outlives the
// workspace: the storage operator keeps the buckets when it tears down the
// Storage resource.
func (s *Service) Delete(ctx context.Context, name string, user *WorkspaceUser) error {
	if !user.Has(PermissionManageMembers) || !user.Has(PermissionManageBuckets) {
		return ErrForbidden
	}
	_, foundStorage, err := s.storages.GetOrNil(ctx, name)
	if err != nil {
		return classify(err)
	}
	_, foundDatalab, err := s.datalabs.GetOrNil(ctx, name)
	if err != nil {
		return classify(err)
	}
	if !foundStorage && !foundDatalab {
		return &NotFoundError{Name: name}
	}

	if foundStorage {
		if err := s.storages.Delete(ctx, name); err != nil && !apierrors.IsNotFound(err) {
			return classify(err)
		}
	}
	if foundDatalab {
		if err := s.datalabs.Delete(ctx, name); err != nil && !apierrors.IsNotFound(err) {
			return classify(err)
		}
	}

	goutil.Logger.Infow("deleted workspace",
		"workspace", name,
		"operation", "delete",
	)
	return nil
}

// WorkspacePatch is the simple single-field patch payload.
type WorkspacePatch struct {
	DatabaseStorageQuota string `json:"database_storage_quota"`
}

// Patch applies a simple field patch under the bounded conflict-retry loop.
func (s *Service) Patch(ctx context.Context, name string, user *WorkspaceUser, patch WorkspacePatch) error {
	if !user.Has(PermissionManageBuckets) {
		return ErrForbidden
	}
	if patch.DatabaseStorageQuota == "" {
		return newValidationError("database_storage_quota", "no field to patch")
	}
	quota, err := resource.ParseQuantity(patch.DatabaseStorageQuota)
	if err != nil {
		return newValidationError("database_storage_quota", "invalid quantity: "+patch.DatabaseStorageQuota)
	}

	err = s.datalabs.Mutate(ctx, name, func(dl *crdv1alpha1.Datalab) error {
		dl.Spec.DatabaseStorageQuota = &quota
		return nil
	})
	return classify(err)
}
