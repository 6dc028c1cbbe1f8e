package bindingstore

// Environment variables naming the binding root. The Kubernetes Service
// Binding variable wins over the older Cloud Native Buildpacks one.
const (
	EnvServiceBindingRoot = "SERVICE_BINDING_ROOT"
	EnvCNBBindings        = "CNB_BINDINGS"
)

// RootFromEnv returns the binding root named by the environment, or "".
func RootFromEnv(getenv func(string) string) string {
	if root := getenv(EnvServiceBindingRoot); root != "" {
		return root
	}
	return getenv(EnvCNBBindings)
}
