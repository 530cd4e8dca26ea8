package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
	"github.com/eoplatform/workspace-api/go-pkg/k8s"
)

const testNamespace = "workspace"

func newTestService(t *testing.T, mode SessionMode, objs ...client.Object) (*Service, client.Client) {
	t.Helper()
	c := fake.NewClientBuilder().
		WithScheme(k8s.Scheme()).
		WithObjects(objs...).
		Build()
	svc := NewService(c, ServiceOptions{
		Namespace:   testNamespace,
		Prefix:      "ws",
		SessionMode: mode,
	})
	return svc, c
}

func adminUser() *WorkspaceUser {
	return NewUser("jeff", rolePermissions[RoleAdmin]...)
}

func accessUser() *WorkspaceUser {
	return NewUser("joe", rolePermissions[RoleAccess]...)
}

func TestServiceCreate(t *testing.T) {
	svc, c := newTestService(t, SessionModeAuto)
	ctx := context.Background()

	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "Jeff Lab", DefaultOwner: "jeff"})
	require.NoError(t, err)
	assert.Equal(t, "ws-jeff-lab", name)

	storage := &crdv1alpha1.Storage{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, storage))
	require.Len(t, storage.Spec.Buckets, 1)
	assert.Equal(t, name, storage.Spec.Buckets[0].Name, "the default bucket carries the object name")

	datalab := &crdv1alpha1.Datalab{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, datalab))
	require.Len(t, datalab.Spec.Memberships, 1)
	assert.Equal(t, crdv1alpha1.MembershipRoleOwner, datalab.Spec.Memberships[0].Role)
	assert.Equal(t, "jeff", datalab.Spec.Memberships[0].Member)
	assert.Equal(t, crdv1alpha1.SessionOnDemandStopped, datalab.Spec.SessionDesired)
}

func TestServiceCreateRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	_, err := svc.Create(context.Background(), WorkspaceCreate{PreferredName: "Jeff Lab"})
	assert.True(t, IsValidation(err), "missing owner should be a validation error, got %v", err)
}

func TestServiceCreateNameCollision(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	ctx := context.Background()

	_, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	// "Jeff" slugifies to the same object name.
	_, err = svc.Create(ctx, WorkspaceCreate{PreferredName: "Jeff", DefaultOwner: "joe"})
	assert.True(t, IsConflict(err), "colliding derived name should conflict, got %v", err)
}

func TestServiceGetAggregates(t *testing.T) {
	svc, c := newTestService(t, SessionModeAuto)
	ctx := context.Background()

	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	ws, err := svc.Get(ctx, name, adminUser())
	require.NoError(t, err)
	assert.Equal(t, StatusProvisioning, ws.Status, "fresh resources have no ready phase yet")
	require.NotNil(t, ws.Storage)
	require.NotNil(t, ws.Datalab)
	assert.Len(t, ws.Storage.Buckets, 1)
	assert.Len(t, ws.Datalab.Memberships, 1)

	// Flip both phases to ready the way the operators would.
	storage := &crdv1alpha1.Storage{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, storage))
	storage.Status.Phase = crdv1alpha1.StoragePhaseReady
	require.NoError(t, c.Update(ctx, storage))
	datalab := &crdv1alpha1.Datalab{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, datalab))
	datalab.Status.Phase = crdv1alpha1.DatalabPhaseReady
	require.NoError(t, c.Update(ctx, datalab))

	ws, err = svc.Get(ctx, name, adminUser())
	require.NoError(t, err)
	assert.Equal(t, StatusReady, ws.Status)
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	_, err := svc.Get(context.Background(), "ws-nope", adminUser())
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestServiceGetStorageOnly(t *testing.T) {
	// A workspace whose datalab was never created still aggregates; the
	// missing kind drops out of the vote.
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status:     crdv1alpha1.StorageStatus{Phase: crdv1alpha1.StoragePhaseReady},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage)

	ws, err := svc.Get(context.Background(), "ws-jeff", adminUser())
	require.NoError(t, err)
	assert.Equal(t, StatusReady, ws.Status)
	assert.NotNil(t, ws.Storage)
	assert.Nil(t, ws.Datalab)
}

func TestServiceGetFiltersByPermission(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	ctx := context.Background()
	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	// No VIEW permissions at all: the workspace is visible but every
	// section is withheld.
	ws, err := svc.Get(ctx, name, NewUser("stranger"))
	require.NoError(t, err)
	assert.Nil(t, ws.Storage.Buckets)
	assert.Nil(t, ws.Storage.AccessRequests)
	assert.Nil(t, ws.Datalab.Memberships)
	assert.Nil(t, ws.Datalab.Databases)
	assert.Nil(t, ws.Storage.Credentials)
}

func TestServiceGetCredentials(t *testing.T) {
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status: crdv1alpha1.StorageStatus{
			Phase:      crdv1alpha1.StoragePhaseReady,
			SecretName: "ws-jeff-creds",
		},
	}
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ws-jeff", Name: "ws-jeff-creds"},
		Data: map[string][]byte{
			"AWS_ACCESS_KEY_ID":     []byte("ak"),
			"AWS_SECRET_ACCESS_KEY": []byte("sk"),
			"endpoint":              []byte("https://s3.example.com"),
			"region":                []byte("eu-central-1"),
		},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage, secret)
	ctx := context.Background()

	ws, err := svc.Get(ctx, "ws-jeff", adminUser())
	require.NoError(t, err)
	require.NotNil(t, ws.Storage.Credentials)
	assert.Equal(t, "ak", ws.Storage.Credentials.Access, "AWS_* keys serve as fallbacks")
	assert.Equal(t, "sk", ws.Storage.Credentials.Secret)
	assert.Equal(t, "https://s3.example.com", ws.Storage.Credentials.Endpoint)
	assert.Equal(t, "ws-jeff", ws.Storage.Credentials.Bucketname)

	// Without VIEW_BUCKET_CREDENTIALS the secret is never read.
	ws, err = svc.Get(ctx, "ws-jeff", NewUser("joe", PermissionViewBuckets))
	require.NoError(t, err)
	assert.Nil(t, ws.Storage.Credentials)
}

func TestServiceGetRegistryCredentials(t *testing.T) {
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status:     crdv1alpha1.StorageStatus{Phase: crdv1alpha1.StoragePhaseReady},
	}
	registrySecret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ws-jeff", Name: "container-registry"},
		Data: map[string][]byte{
			"username": []byte("jeff"),
			"password": []byte("hunter2"),
		},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage, registrySecret)
	ctx := context.Background()

	ws, err := svc.Get(ctx, "ws-jeff", adminUser())
	require.NoError(t, err)
	require.NotNil(t, ws.ContainerRegistry)
	assert.Equal(t, "jeff", ws.ContainerRegistry.Username)
	assert.Equal(t, "hunter2", ws.ContainerRegistry.Password)

	// Same gate as the storage credentials.
	ws, err = svc.Get(ctx, "ws-jeff", NewUser("joe", PermissionViewBuckets))
	require.NoError(t, err)
	assert.Nil(t, ws.ContainerRegistry)
}

func TestServiceGetRegistryCredentialsIncomplete(t *testing.T) {
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status:     crdv1alpha1.StorageStatus{Phase: crdv1alpha1.StoragePhaseReady},
	}
	halfSecret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ws-jeff", Name: "container-registry"},
		Data:       map[string][]byte{"username": []byte("jeff")},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage, halfSecret)

	// A half-written secret means "no credentials yet", not an error.
	ws, err := svc.Get(context.Background(), "ws-jeff", adminUser())
	require.NoError(t, err)
	assert.Nil(t, ws.ContainerRegistry)
}

func TestServiceGetRegistrySecretMissing(t *testing.T) {
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status:     crdv1alpha1.StorageStatus{Phase: crdv1alpha1.StoragePhaseReady},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage)

	ws, err := svc.Get(context.Background(), "ws-jeff", adminUser())
	require.NoError(t, err)
	assert.Nil(t, ws.ContainerRegistry)
}

func TestServiceGetCredentialsSecretMissing(t *testing.T) {
	storage := &crdv1alpha1.Storage{
		ObjectMeta: metav1.ObjectMeta{Namespace: testNamespace, Name: "ws-jeff"},
		Status: crdv1alpha1.StorageStatus{
			Phase:      crdv1alpha1.StoragePhaseReady,
			SecretName: "ws-jeff-creds",
		},
	}
	svc, _ := newTestService(t, SessionModeAuto, storage)

	// A secret the operator has not written yet means "no credentials", not
	// an error.
	ws, err := svc.Get(context.Background(), "ws-jeff", adminUser())
	require.NoError(t, err)
	assert.Nil(t, ws.Storage.Credentials)
}

func TestServiceDelete(t *testing.T) {
	svc, c := newTestService(t, SessionModeAuto)
	ctx := context.Background()
	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, name, adminUser()))

	err = c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, &crdv1alpha1.Storage{})
	assert.Error(t, err, "storage should be gone")
	err = c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, &crdv1alpha1.Datalab{})
	assert.Error(t, err, "datalab should be gone")
}

func TestServiceDeleteForbidden(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	ctx := context.Background()
	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	assert.True(t, IsForbidden(svc.Delete(ctx, name, accessUser())))
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, _ := newTestService(t, SessionModeAuto)
	err := svc.Delete(context.Background(), "ws-nope", adminUser())
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestServicePatchQuota(t *testing.T) {
	svc, c := newTestService(t, SessionModeAuto)
	ctx := context.Background()
	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	require.NoError(t, svc.Patch(ctx, name, adminUser(), WorkspacePatch{DatabaseStorageQuota: "20Gi"}))

	datalab := &crdv1alpha1.Datalab{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, datalab))
	require.NotNil(t, datalab.Spec.DatabaseStorageQuota)
	assert.Equal(t, "20Gi", datalab.Spec.DatabaseStorageQuota.String())

	err = svc.Patch(ctx, name, adminUser(), WorkspacePatch{DatabaseStorageQuota: "not-a-quantity"})
	assert.True(t, IsValidation(err), "got %v", err)
	assert.True(t, IsForbidden(svc.Patch(ctx, name, accessUser(), WorkspacePatch{DatabaseStorageQuota: "1Gi"})))
}

func TestServiceSessionIntent(t *testing.T) {
	svc, c := newTestService(t, SessionModeAuto)
	ctx := context.Background()
	name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
	require.NoError(t, err)

	require.NoError(t, svc.StartSession(ctx, name, accessUser()))
	datalab := &crdv1alpha1.Datalab{}
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, datalab))
	assert.Equal(t, crdv1alpha1.SessionOnDemandRunning, datalab.Spec.SessionDesired)

	require.NoError(t, svc.StopSession(ctx, name, accessUser()))
	require.NoError(t, c.Get(ctx, client.ObjectKey{Namespace: testNamespace, Name: name}, datalab))
	assert.Equal(t, crdv1alpha1.SessionOnDemandStopped, datalab.Spec.SessionDesired)

	assert.True(t, IsForbidden(svc.StartSession(ctx, name, NewUser("stranger"))))
}

func TestServiceSessionIntentRefusedByMode(t *testing.T) {
	for _, mode := range []SessionMode{SessionModeOff, SessionModeOn} {
		svc, _ := newTestService(t, mode)
		ctx := context.Background()
		name, err := svc.Create(ctx, WorkspaceCreate{PreferredName: "jeff", DefaultOwner: "jeff"})
		require.NoError(t, err)

		assert.True(t, IsForbidden(svc.StartSession(ctx, name, accessUser())), "mode %s", mode)
		assert.True(t, IsForbidden(svc.StopSession(ctx, name, accessUser())), "mode %s", mode)
	}
}
