package keystore

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	jks "github.com/pavlo-v-chernykh/keystore-go/v4"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/sufield/svcbind/internal/domain"
)

// StoreType is the on-disk container format.
type StoreType string

const (
	PKCS12 StoreType = "PKCS12"
	JKS    StoreType = "JKS"
)

// ParseStoreType converts a configuration value. "" selects PKCS12.
func ParseStoreType(s string) (StoreType, error) {
	switch StoreType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PKCS12, "P12":
		return PKCS12, nil
	case JKS:
		return JKS, nil
	default:
		return "", fmt.Errorf("unknown store type %q (use %q or %q)", s, PKCS12, JKS)
	}
}

func (t StoreType) extension() string {
	if t == JKS {
		return ".jks"
	}
	return ".p12"
}

// Artifact is a generated credential store.
type Artifact struct {
	Path     string
	Password string
	Type     StoreType
	Alias    string

	// KeyStore is true when the store holds a private key entry.
	KeyStore bool

	// KeyPassword protects the private key entry. JKS entries carry an
	// empty password; go-pkcs12 encrypts the key bag with the store
	// password, so PKCS12 entries repeat Password. Empty for trust stores.
	KeyPassword string
}

// Remove deletes the store file.
func (a Artifact) Remove() error {
	if a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential store %s: %w", a.Path, err)
	}
	return nil
}

// Synthesizer writes credential stores.
type Synthesizer struct {
	dir          string
	storeType    StoreType
	resourceRoot string
	rand         io.Reader
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithDir sets the directory for store files. Default is os.TempDir().
func WithDir(dir string) Option {
	return func(s *Synthesizer) {
		s.dir = dir
	}
}

// WithStoreType selects the container format. Default is PKCS12.
func WithStoreType(t StoreType) Option {
	return func(s *Synthesizer) {
		if t != "" {
			s.storeType = t
		}
	}
}

// WithResourceRoot sets the directory "classpath:" references resolve against.
func WithResourceRoot(dir string) Option {
	return func(s *Synthesizer) {
		s.resourceRoot = dir
	}
}

// WithRand overrides the randomness source, for tests.
func WithRand(r io.Reader) Option {
	return func(s *Synthesizer) {
		s.rand = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		storeType: PKCS12,
		rand:      rand.Reader,
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoreType returns the configured container format.
func (s *Synthesizer) StoreType() StoreType {
	return s.storeType
}

// Synthesize builds a store from certificate text and optional private key
// text. Both may be literal PEM or file references. An empty privateKey
// produces a trust store.
//
// Errors wrap domain.ErrCredentialSynthesis. A failure while writing may
// leave a partial file behind.
func (s *Synthesizer) Synthesize(certificate, privateKey, alias string) (Artifact, error) {
	certPEM, err := resolveText(certificate, s.resourceRoot)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: certificate: %v", domain.ErrCredentialSynthesis, err)
	}
	chain, err := ParseCertificates(certPEM)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: certificate: %v", domain.ErrCredentialSynthesis, err)
	}

	if strings.TrimSpace(privateKey) == "" {
		return s.SynthesizeTrustStore(chain, alias)
	}

	keyPEM, err := resolveText(privateKey, s.resourceRoot)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: private key: %v", domain.ErrCredentialSynthesis, err)
	}
	key, err := ParsePrivateKey(keyPEM)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: private key: %v", domain.ErrCredentialSynthesis, err)
	}

	a, err := s.write(alias, true, func(password string) ([]byte, error) {
		return s.encodeKeyStore(key, chain, alias, password)
	})
	if err != nil {
		return Artifact{}, err
	}
	if s.storeType == PKCS12 {
		a.KeyPassword = a.Password
	}
	return a, nil
}

// SynthesizeTrustStore builds a trust store from parsed certificates.
func (s *Synthesizer) SynthesizeTrustStore(certs []*x509.Certificate, alias string) (Artifact, error) {
	if len(certs) == 0 {
		return Artifact{}, fmt.Errorf("%w: no certificates for trust store %q", domain.ErrCredentialSynthesis, alias)
	}
	return s.write(alias, false, func(password string) ([]byte, error) {
		return s.encodeTrustStore(certs, alias, password)
	})
}

func (s *Synthesizer) write(alias string, keyStore bool, encode func(password string) ([]byte, error)) (Artifact, error) {
	password, err := generatePassword(s.rand)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", domain.ErrCredentialSynthesis, err)
	}

	data, err := encode(password)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: encode %s store %q: %v", domain.ErrCredentialSynthesis, s.storeType, alias, err)
	}

	f, err := os.CreateTemp(s.dir, "svcbind-"+sanitize(alias)+"-*"+s.storeType.extension())
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: create store file: %v", domain.ErrCredentialSynthesis, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return Artifact{}, fmt.Errorf("%w: write %s: %v", domain.ErrCredentialSynthesis, f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return Artifact{}, fmt.Errorf("%w: close %s: %v", domain.ErrCredentialSynthesis, f.Name(), err)
	}

	s.logger.Debug("wrote credential store", "path", f.Name(), "type", string(s.storeType), "alias", alias, "key_store", keyStore)

	return Artifact{
		Path:     f.Name(),
		Password: password,
		Type:     s.storeType,
		Alias:    alias,
		KeyStore: keyStore,
	}, nil
}

func (s *Synthesizer) encodeKeyStore(key crypto.Signer, chain []*x509.Certificate, alias, password string) ([]byte, error) {
	if s.storeType == JKS {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, err
		}
		ks := jks.New(jks.WithOrderedAliases(), jks.WithCustomRandomNumberGenerator(s.rand))
		entry := jks.PrivateKeyEntry{
			CreationTime:     s.now(),
			PrivateKey:       der,
			CertificateChain: jksChain(chain),
		}
		// Only the store is protected; the entry opens with an empty password.
		if err := ks.SetPrivateKeyEntry(alias, entry, []byte{}); err != nil {
			return nil, err
		}
		return storeJKS(ks, password)
	}

	// LegacyDES keeps the file readable by JVMs that predate PBES2 support.
	return pkcs12.LegacyDES.WithRand(s.rand).Encode(key, chain[0], chain[1:], password)
}

func (s *Synthesizer) encodeTrustStore(certs []*x509.Certificate, alias, password string) ([]byte, error) {
	if s.storeType == JKS {
		ks := jks.New(jks.WithOrderedAliases(), jks.WithCustomRandomNumberGenerator(s.rand))
		for i, cert := range certs {
			entry := jks.TrustedCertificateEntry{
				CreationTime: s.now(),
				Certificate:  jks.Certificate{Type: "X509", Content: cert.Raw},
			}
			if err := ks.SetTrustedCertificateEntry(entryAlias(alias, i), entry); err != nil {
				return nil, err
			}
		}
		return storeJKS(ks, password)
	}

	entries := make([]pkcs12.TrustStoreEntry, 0, len(certs))
	for i, cert := range certs {
		entries = append(entries, pkcs12.TrustStoreEntry{Cert: cert, FriendlyName: entryAlias(alias, i)})
	}
	return pkcs12.LegacyDES.WithRand(s.rand).EncodeTrustStoreEntries(entries, password)
}

func storeJKS(ks jks.KeyStore, password string) ([]byte, error) {
	var buf bytes.Buffer
	if err := ks.Store(&buf, []byte(password)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func jksChain(chain []*x509.Certificate) []jks.Certificate {
	out := make([]jks.Certificate, 0, len(chain))
	for _, cert := range chain {
		out = append(out, jks.Certificate{Type: "X509", Content: cert.Raw})
	}
	return out
}

func entryAlias(alias string, i int) string {
	return fmt.Sprintf("%s-%d", alias, i)
}

// sanitize keeps alias-derived file name fragments to a safe charset.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
