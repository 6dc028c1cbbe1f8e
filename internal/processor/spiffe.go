package processor

import (
	"fmt"

	"github.com/spiffe/go-spiffe/v2/bundle/x509bundle"
	"github.com/spiffe/go-spiffe/v2/spiffeid"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
)

// SPIFFE binding fields.
const (
	KeyTrustDomain    = "trust-domain"
	KeySPIFFEID       = "spiffe-id"
	KeyEndpointSocket = "endpoint-socket"
	KeyBundle         = "bundle.pem"
)

// SPIFFE maps "spiffe" bindings. The trust domain is required; the SPIFFE ID,
// when bound, must belong to it. bundle.pem becomes a trust store holding the
// trust domain's X.509 authorities, and tls.crt with tls.key a key store.
func SPIFFE() Processor {
	const p = "spiffe"
	return Processor{
		Type: "spiffe",
		Rules: Static(
			mapper.Copy(KeyEndpointSocket, p+".endpoint-socket"),
		),
		Contribute: func(env *Env, b *domain.Binding, props domain.Properties) error {
			raw, _ := b.Get(KeyTrustDomain)
			td, err := spiffeid.TrustDomainFromString(raw)
			if err != nil {
				return fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidBinding, KeyTrustDomain, raw, err)
			}
			props.Set(p+".trust-domain", td.Name())

			if rawID, ok := b.Get(KeySPIFFEID); ok && rawID != "" {
				id, err := spiffeid.FromString(rawID)
				if err != nil {
					return fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidBinding, KeySPIFFEID, rawID, err)
				}
				if !id.MemberOf(td) {
					return fmt.Errorf("%w: %s %q is not in trust domain %q", domain.ErrInvalidBinding, KeySPIFFEID, rawID, td.Name())
				}
				props.Set(p+".id", id.String())
			}

			if pemBundle, ok := b.Get(KeyBundle); ok && pemBundle != "" {
				bundle, err := x509bundle.Parse(td, []byte(pemBundle))
				if err != nil {
					return fmt.Errorf("%w: %s: %v", domain.ErrCredentialSynthesis, KeyBundle, err)
				}
				a, err := env.Synthesizer.SynthesizeTrustStore(bundle.X509Authorities(), b.Name()+"-bundle")
				if err != nil {
					return fmt.Errorf("trust store: %w", err)
				}
				env.keep(a)
				recordStore(props, storeKeys{
					location: p + ".trust-store.location",
					password: p + ".trust-store.password",
					typ:      p + ".trust-store.type",
				}, &a)
			}

			stores, err := env.synthesizeTLS(b)
			if err != nil {
				return err
			}
			if stores.trust != nil && !props.Has(p+".trust-store.location") {
				recordStore(props, storeKeys{
					location: p + ".trust-store.location",
					password: p + ".trust-store.password",
					typ:      p + ".trust-store.type",
				}, stores.trust)
			}
			recordStore(props, storeKeys{
				location: p + ".key-store.location",
				password: p + ".key-store.password",
				typ:      p + ".key-store.type",
			}, stores.key)
			return nil
		},
	}
}
