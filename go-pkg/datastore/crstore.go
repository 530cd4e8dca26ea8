package datastore

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// conflictRetry bounds the read-modify-write loop on optimistic-concurrency
// conflicts. After the last attempt the conflict is surfaced to the caller.
var conflictRetry = wait.Backoff{
	Steps:    3,
	Duration: 100 * time.Millisecond,
	Factor:   2.0,
	Jitter:   0.1,
}

// CRStore is a typed store for one custom resource kind in one namespace.
// All state lives in the cluster; the store itself is stateless and safe for
// concurrent use.
type CRStore[T client.Object] struct {
	namespace string
	example   T
	client    client.Client
}

func NewCRStore[T client.Object](namespace string, example T, c client.Client) *CRStore[T] {
	return &CRStore[T]{
		namespace: namespace,
		example:   example,
		client:    c,
	}
}

func (s *CRStore[T]) newObject() T {
	return s.example.DeepCopyObject().(T)
}

func (s *CRStore[T]) Create(ctx context.Context, name string, t T) error {
	t.SetNamespace(s.namespace)
	t.SetName(name)
	return s.client.Create(ctx, t)
}

// Get returns the named resource. The resource version carried on the
// returned object is the caller's optimistic-concurrency token.
func (s *CRStore[T]) Get(ctx context.Context, name string) (T, error) {
	t := s.newObject()
	err := s.client.Get(ctx, client.ObjectKey{
		Namespace: s.namespace,
		Name:      name,
	}, t)
	return t, err
}

// GetOrNil returns (resource, true) when the resource exists and
// (zero, false) when it does not. A resource that was never created is a
// valid state for a half-provisioned workspace, not an error.
func (s *CRStore[T]) GetOrNil(ctx context.Context, name string) (T, bool, error) {
	t, err := s.Get(ctx, name)
	if err != nil {
		var zero T
		if errors.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return t, true, nil
}

func (s *CRStore[T]) List(ctx context.Context) ([]T, error) {
	gvk := s.example.GetObjectKind().GroupVersionKind()
	gvk.Kind += "List"
	tList := &unstructured.UnstructuredList{}
	tList.SetGroupVersionKind(gvk)
	err := s.client.List(ctx, tList, client.InNamespace(s.namespace))
	if err != nil {
		return nil, err
	}
	ts := make([]T, 0, len(tList.Items))
	for _, item := range tList.Items {
		t := s.newObject()
		err := runtime.DefaultUnstructuredConverter.FromUnstructured(item.Object, t)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// Update writes t back. The resource version on t must be the one read
// before mutating; a stale version fails with a conflict error.
func (s *CRStore[T]) Update(ctx context.Context, name string, t T) error {
	t.SetNamespace(s.namespace)
	t.SetName(name)
	return s.client.Update(ctx, t)
}

func (s *CRStore[T]) Delete(ctx context.Context, name string) error {
	t := s.newObject()
	t.SetNamespace(s.namespace)
	t.SetName(name)
	return s.client.Delete(ctx, t)
}

// Mutate runs a bounded read-modify-write loop against the named resource.
// Each attempt re-reads the resource, applies mutate and writes it back with
// the freshly read resource version. Only optimistic-concurrency conflicts
// are retried; any other error, including one returned by mutate, aborts
// immediately. The last conflict is returned unwrapped so callers can map it
// to a retryable 409.
func (s *CRStore[T]) Mutate(ctx context.Context, name string, mutate func(T) error) error {
	return retry.RetryOnConflict(conflictRetry, func() error {
		t, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		if err := mutate(t); err != nil {
			return err
		}
		return s.client.Update(ctx, t)
	})
}
