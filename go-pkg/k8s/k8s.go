package k8s

import (
	"sync"

	crdv1alpha1 "github.com/eoplatform/workspace-api/crd/api/v1alpha1"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
)

var scheme *runtime.Scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(crdv1alpha1.AddToScheme(scheme))
}

// Scheme returns the runtime scheme holding the core and pkg.internal types.
func Scheme() *runtime.Scheme {
	return scheme
}

var (
	defaultClientMu sync.Mutex
	defaultClient   client.Client
)

// LoadDefaultClient loads the default Kubernetes client from the ambient
// kubeconfig or the in-cluster service account.
func LoadDefaultClient() (client.Client, error) {
	defaultClientMu.Lock()
	defer defaultClientMu.Unlock()

	if defaultClient != nil {
		return defaultClient, nil
	}

	config, err := config.GetConfig()
	if err != nil {
		goutil.Logger.Errorw("failed to load k8s config",
			"error", err,
		)
		return nil, err
	}

	defaultClient, err = client.New(config, client.Options{Scheme: scheme})
	if err != nil {
		goutil.Logger.Errorw("failed to create k8s client",
			"error", err,
		)
	}
	return defaultClient, err
}

// MustLoadDefaultClient loads the default Kubernetes client
// and panics if it fails.
func MustLoadDefaultClient() client.Client {
	c, err := LoadDefaultClient()
	if err != nil {
		goutil.Logger.Fatalw("failed to load k8s client",
			"error", err,
		)
	}
	return c
}
