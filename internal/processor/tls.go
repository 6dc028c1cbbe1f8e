package processor

import (
	"fmt"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/keystore"
)

// PEM fields read from TLS-capable bindings.
const (
	KeyCACert  = "ca.crt"
	KeyTLSCert = "tls.crt"
	KeyTLSKey  = "tls.key"
)

// storeKeys names the properties recording one store.
type storeKeys struct {
	location string
	password string
	typ      string

	// keyPassword is set for formats that ask for the entry password too.
	keyPassword string
}

// tlsStores holds what synthesizeTLS produced. Either may be nil.
type tlsStores struct {
	trust *keystore.Artifact
	key   *keystore.Artifact
}

func (s tlsStores) any() bool {
	return s.trust != nil || s.key != nil
}

// synthesizeTLS builds a trust store from ca.crt and a key store from
// tls.crt with tls.key. A tls.crt without tls.key is an error.
func (e *Env) synthesizeTLS(b *domain.Binding) (tlsStores, error) {
	var out tlsStores

	if ca, ok := b.Get(KeyCACert); ok && ca != "" {
		a, err := e.Synthesizer.Synthesize(ca, "", b.Name()+"-ca")
		if err != nil {
			return tlsStores{}, fmt.Errorf("trust store: %w", err)
		}
		e.keep(a)
		out.trust = &a
	}

	cert, hasCert := b.Get(KeyTLSCert)
	key, hasKey := b.Get(KeyTLSKey)
	switch {
	case hasCert && cert != "" && hasKey && key != "":
		a, err := e.Synthesizer.Synthesize(cert, key, b.Name())
		if err != nil {
			return tlsStores{}, fmt.Errorf("key store: %w", err)
		}
		e.keep(a)
		out.key = &a
	case hasKey && key != "":
		return tlsStores{}, fmt.Errorf("%w: %s present without %s", domain.ErrCredentialSynthesis, KeyTLSKey, KeyTLSCert)
	case hasCert && cert != "":
		return tlsStores{}, fmt.Errorf("%w: %s present without %s", domain.ErrCredentialSynthesis, KeyTLSCert, KeyTLSKey)
	}

	return out, nil
}

func recordStore(props domain.Properties, keys storeKeys, a *keystore.Artifact) {
	if a == nil {
		return
	}
	props.Set(keys.location, "file:"+a.Path)
	props.Set(keys.password, a.Password)
	props.Set(keys.typ, string(a.Type))
	if keys.keyPassword != "" {
		props.Set(keys.keyPassword, a.KeyPassword)
	}
}
