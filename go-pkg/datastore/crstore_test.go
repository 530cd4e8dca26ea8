package datastore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
)

func newStorageStore(t *testing.T) *CRStore[*crdv1alpha1.Storage] {
	t.Helper()
	scheme := runtime.NewScheme()
	utilruntime.Must(crdv1alpha1.AddToScheme(scheme))
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	example := &crdv1alpha1.Storage{
		TypeMeta: metav1.TypeMeta{
			APIVersion: crdv1alpha1.GroupVersion.String(),
			Kind:       "Storage",
		},
	}
	return NewCRStore[*crdv1alpha1.Storage]("test-ns", example, c)
}

func TestCRStoreCreateGet(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{
		Spec: crdv1alpha1.StorageSpec{
			Buckets: []crdv1alpha1.Bucket{{Name: "ws-jeff"}},
		},
	}))

	got, err := store.Get(ctx, "ws-jeff")
	require.NoError(t, err)
	assert.Equal(t, "ws-jeff", got.Name)
	assert.Equal(t, "test-ns", got.Namespace)
	require.Len(t, got.Spec.Buckets, 1)
	assert.NotEmpty(t, got.ResourceVersion)
}

func TestCRStoreGetOrNil(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	_, found, err := store.GetOrNil(ctx, "ws-absent")
	require.NoError(t, err, "an absent resource is a valid state, not an error")
	assert.False(t, found)

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{}))
	got, found, err := store.GetOrNil(ctx, "ws-jeff")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ws-jeff", got.Name)
}

func TestCRStoreList(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{}))
	require.NoError(t, store.Create(ctx, "ws-joe", &crdv1alpha1.Storage{}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCRStoreDelete(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{}))
	require.NoError(t, store.Delete(ctx, "ws-jeff"))

	_, found, err := store.GetOrNil(ctx, "ws-jeff")
	require.NoError(t, err)
	assert.False(t, found)

	assert.True(t, apierrors.IsNotFound(store.Delete(ctx, "ws-jeff")))
}

func TestCRStoreMutate(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{}))
	require.NoError(t, store.Mutate(ctx, "ws-jeff", func(st *crdv1alpha1.Storage) error {
		st.Spec.Buckets = append(st.Spec.Buckets, crdv1alpha1.Bucket{Name: "ws-jeff-data"})
		return nil
	}))

	got, err := store.Get(ctx, "ws-jeff")
	require.NoError(t, err)
	require.Len(t, got.Spec.Buckets, 1)
	assert.Equal(t, "ws-jeff-data", got.Spec.Buckets[0].Name)
}

func TestCRStoreMutateAbortsOnCallbackError(t *testing.T) {
	store := newStorageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "ws-jeff", &crdv1alpha1.Storage{}))

	boom := errors.New("boom")
	calls := 0
	err := store.Mutate(ctx, "ws-jeff", func(st *crdv1alpha1.Storage) error {
		calls++
		st.Spec.Buckets = append(st.Spec.Buckets, crdv1alpha1.Bucket{Name: "ws-jeff-data"})
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "only conflicts are retried")

	got, err := store.Get(ctx, "ws-jeff")
	require.NoError(t, err)
	assert.Empty(t, got.Spec.Buckets, "a failed mutate must not write")
}

func TestCRStoreMutateMissing(t *testing.T) {
	store := newStorageStore(t)
	err := store.Mutate(context.Background(), "ws-absent", func(st *crdv1alpha1.Storage) error {
		return nil
	})
	assert.True(t, apierrors.IsNotFound(err))
}
