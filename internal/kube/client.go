// Package kube projects Kubernetes Secrets into binding directories, the
// way a service binding operator mounts them into a workload.
package kube

import (
	"fmt"

	"helm.sh/helm/v3/pkg/cli"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// RESTConfig resolves kubeconfig the same way helm and kubectl do:
// KUBECONFIG, then ~/.kube/config, then in-cluster. kubeconfig and
// kubeContext override when non-empty.
func RESTConfig(kubeconfig, kubeContext string) (*rest.Config, error) {
	settings := cli.New()
	if kubeconfig != "" {
		settings.KubeConfig = kubeconfig
	}
	if kubeContext != "" {
		settings.KubeContext = kubeContext
	}
	return settings.RESTClientGetter().ToRESTConfig()
}

// NewClient returns a clientset for RESTConfig.
func NewClient(kubeconfig, kubeContext string) (kubernetes.Interface, error) {
	config, err := RESTConfig(kubeconfig, kubeContext)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubeconfig: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return clientset, nil
}
