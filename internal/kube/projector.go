package kube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/kubernetes"

	"github.com/sufield/svcbind/internal/domain"
)

// SecretTypePrefix marks Secrets typed for service binding, as in
// "servicebinding.io/postgresql".
const SecretTypePrefix = "servicebinding.io/"

// Annotations that override how a Secret is projected.
const (
	AnnotationName     = "svcbind.io/binding-name"
	AnnotationType     = "svcbind.io/type"
	AnnotationProvider = "svcbind.io/provider"
)

// Projector writes Secrets as flat binding directories.
type Projector struct {
	client kubernetes.Interface
	logger *slog.Logger
}

// NewProjector creates a Projector. logger may be nil.
func NewProjector(client kubernetes.Interface, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Projector{client: client, logger: logger}
}

// Project fetches one Secret and writes it under root. It returns the
// binding directory.
func (p *Projector) Project(ctx context.Context, namespace, name, root string) (string, error) {
	secret, err := p.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	return p.write(secret, root)
}

// ProjectSelected writes every Secret in namespace matching selector, in
// name order. It stops at the first failure.
func (p *Projector) ProjectSelected(ctx context.Context, namespace, selector, root string) ([]string, error) {
	list, err := p.client.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list secrets in %s (%q): %w", namespace, selector, err)
	}

	items := list.Items
	slices.SortFunc(items, func(a, b corev1.Secret) int { return strings.Compare(a.Name, b.Name) })

	dirs := make([]string, 0, len(items))
	for i := range items {
		dir, err := p.write(&items[i], root)
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// Files returns the binding files a Secret projects to, including the
// reserved type and provider entries.
func Files(secret *corev1.Secret) (map[string][]byte, error) {
	files := make(map[string][]byte, len(secret.Data)+2)
	for k, v := range secret.Data {
		if errs := validation.IsConfigMapKey(k); len(errs) > 0 {
			return nil, fmt.Errorf("%w: secret %s key %q: %s", domain.ErrMalformedSecret, secret.Name, k, strings.Join(errs, "; "))
		}
		if strings.HasPrefix(k, ".") {
			return nil, fmt.Errorf("%w: secret %s key %q is hidden and would be ignored", domain.ErrMalformedSecret, secret.Name, k)
		}
		files[k] = v
	}
	for k, v := range secret.StringData {
		files[k] = []byte(v)
	}

	if typ := bindingType(secret); typ != "" {
		files[domain.KeyType] = []byte(typ)
	}
	if provider := secret.Annotations[AnnotationProvider]; provider != "" {
		files[domain.KeyProvider] = []byte(provider)
	}
	if _, ok := files[domain.KeyType]; !ok {
		if _, ok := files[domain.KeyKind]; !ok {
			return nil, fmt.Errorf("%w: secret %s has no binding type", domain.ErrInvalidBinding, secret.Name)
		}
	}
	return files, nil
}

func bindingType(secret *corev1.Secret) string {
	if typ := secret.Annotations[AnnotationType]; typ != "" {
		return typ
	}
	if typ, ok := strings.CutPrefix(string(secret.Type), SecretTypePrefix); ok {
		return typ
	}
	return ""
}

// BindingName returns the directory name for secret.
func BindingName(secret *corev1.Secret) string {
	if name := secret.Annotations[AnnotationName]; name != "" {
		return name
	}
	return secret.Name
}

// write replaces <root>/<name> with the Secret's files. The new directory is
// assembled beside the old one and swapped in with renames, so readers see
// either the old or the new binding.
func (p *Projector) write(secret *corev1.Secret, root string) (string, error) {
	files, err := Files(secret)
	if err != nil {
		return "", err
	}

	name := BindingName(secret)
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", fmt.Errorf("%w: binding name %q: %s", domain.ErrInvalidBinding, name, strings.Join(errs, "; "))
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create binding root %s: %w", root, err)
	}
	target := filepath.Join(root, name)

	staging, err := os.MkdirTemp(root, "."+name+"-")
	if err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	for k, v := range files {
		if err := os.WriteFile(filepath.Join(staging, k), v, 0o600); err != nil {
			return "", fmt.Errorf("write %s: %w", k, err)
		}
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		return "", fmt.Errorf("chmod %s: %w", staging, err)
	}

	old := ""
	if _, err := os.Stat(target); err == nil {
		old = staging + ".old"
		if err := os.Rename(target, old); err != nil {
			return "", fmt.Errorf("move aside %s: %w", target, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", target, err)
	}

	if err := os.Rename(staging, target); err != nil {
		if old != "" {
			_ = os.Rename(old, target)
		}
		return "", fmt.Errorf("install %s: %w", target, err)
	}
	if old != "" {
		if err := os.RemoveAll(old); err != nil {
			p.logger.Warn("failed to remove previous binding", "path", old, "error", err)
		}
	}

	p.logger.Info("projected secret", "secret", secret.Namespace+"/"+secret.Name, "binding", name, "files", len(files))
	return target, nil
}
