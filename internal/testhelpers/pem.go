package testhelpers

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/url"
	"testing"
	"time"
)

// Chain is a generated CA plus leaf, with PEM encodings.
type Chain struct {
	CA   *x509.Certificate
	Leaf *x509.Certificate

	// CAPEM is the CA certificate alone.
	CAPEM string

	// ChainPEM is leaf followed by CA.
	ChainPEM string

	// KeyPEM is the leaf key in PKCS#8.
	KeyPEM string

	// RSAKeyPEM is an unrelated PKCS#1 RSA key, for format coverage.
	RSAKeyPEM string

	// ECKeyPEM is the leaf key in SEC1 form.
	ECKeyPEM string
}

// NewChain generates a CA and a leaf signed by it. uris are added to the
// leaf as URI SANs.
func NewChain(t testing.TB, commonName string, uris ...string) *Chain {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate CA key: %v", err)
	}
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: commonName + " CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("create CA: %v", err)
	}
	ca, err := x509.ParseCertificate(caDER)
	if err != nil {
		t.Fatalf("parse CA: %v", err)
	}

	leafKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate leaf key: %v", err)
	}
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
	}
	for _, raw := range uris {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("parse URI SAN %q: %v", raw, err)
		}
		leafTmpl.URIs = append(leafTmpl.URIs, u)
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, ca, &leafKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("create leaf: %v", err)
	}
	leaf, err := x509.ParseCertificate(leafDER)
	if err != nil {
		t.Fatalf("parse leaf: %v", err)
	}

	pkcs8, err := x509.MarshalPKCS8PrivateKey(leafKey)
	if err != nil {
		t.Fatalf("marshal leaf key: %v", err)
	}
	sec1, err := x509.MarshalECPrivateKey(leafKey)
	if err != nil {
		t.Fatalf("marshal SEC1 key: %v", err)
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}

	caPEM := encode("CERTIFICATE", caDER)
	return &Chain{
		CA:        ca,
		Leaf:      leaf,
		CAPEM:     caPEM,
		ChainPEM:  encode("CERTIFICATE", leafDER) + caPEM,
		KeyPEM:    encode("PRIVATE KEY", pkcs8),
		RSAKeyPEM: encode("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(rsaKey)),
		ECKeyPEM:  encode("EC PRIVATE KEY", sec1),
	}
}

func encode(typ string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der}))
}
