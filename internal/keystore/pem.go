package keystore

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	pemPrefix       = "-----BEGIN"
	classpathPrefix = "classpath:"
	filePrefix      = "file:"
)

// resolveText returns PEM bytes for text, which is either literal PEM or a
// reference to a file holding PEM: "classpath:<rel>" (relative to
// resourceRoot), "file:<path>" or a bare path.
func resolveText(text, resourceRoot string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty PEM content")
	}
	if strings.HasPrefix(trimmed, pemPrefix) {
		return []byte(trimmed), nil
	}

	var path string
	switch {
	case strings.HasPrefix(trimmed, classpathPrefix):
		rel := strings.TrimLeft(strings.TrimPrefix(trimmed, classpathPrefix), "/")
		path = filepath.Join(resourceRoot, rel)
	case strings.HasPrefix(trimmed, filePrefix):
		path = strings.TrimPrefix(trimmed, filePrefix)
	default:
		path = trimmed
	}

	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - reference comes from a mounted binding
	if err != nil {
		return nil, fmt.Errorf("read PEM reference %q: %w", trimmed, err)
	}
	if !bytes.Contains(data, []byte(pemPrefix)) {
		return nil, fmt.Errorf("PEM reference %q does not contain PEM data", trimmed)
	}
	return data, nil
}

// ParseCertificates decodes every CERTIFICATE block in data, in order.
// Other block types are skipped. At least one certificate is required.
func ParseCertificates(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse certificate %d: %w", len(certs), err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, errors.New("no certificates found in PEM data")
	}
	return certs, nil
}

// ParsePrivateKey decodes the first private key block in data. PKCS#8,
// PKCS#1 RSA and SEC1 EC encodings are accepted; encrypted keys are not.
func ParsePrivateKey(data []byte) (crypto.Signer, error) {
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errors.New("no private key found in PEM data")
		}

		var (
			key any
			err error
		)
		switch block.Type {
		case "PRIVATE KEY":
			key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
		case "RSA PRIVATE KEY":
			key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		case "EC PRIVATE KEY":
			key, err = x509.ParseECPrivateKey(block.Bytes)
		case "ENCRYPTED PRIVATE KEY":
			return nil, errors.New("encrypted private keys are not supported")
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", strings.ToLower(block.Type), err)
		}

		switch k := key.(type) {
		case *rsa.PrivateKey:
			return k, nil
		case *ecdsa.PrivateKey:
			return k, nil
		case ed25519.PrivateKey:
			return k, nil
		default:
			return nil, fmt.Errorf("unsupported private key type %T", key)
		}
	}
}
