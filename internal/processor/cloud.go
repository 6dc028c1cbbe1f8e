package processor

import (
	"strings"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
)

// Vault maps "vault" bindings. Method-specific fields are mapped only for
// the bound authentication-method.
func Vault() Processor {
	const p = "spring.cloud.vault"
	return Processor{
		Type: "vault",
		Rules: func(_ *Env, b *domain.Binding) []mapper.Rule {
			rules := []mapper.Rule{
				mapper.Copy("uri", p+".uri"),
				mapper.Copy("namespace", p+".namespace"),
				mapper.Convert("authentication-method", p+".authentication", strings.ToUpper),
			}
			method, _ := b.Get("authentication-method")
			switch strings.ToLower(method) {
			case "token":
				rules = append(rules, mapper.Copy("token", p+".token"))
			case "approle":
				rules = append(rules,
					mapper.Copy("role-id", p+".app-role.role-id"),
					mapper.Copy("secret-id", p+".app-role.secret-id"),
					mapper.Copy("role", p+".app-role.role"),
					mapper.Copy("app-role-path", p+".app-role.app-role-path"),
				)
			case "kubernetes":
				rules = append(rules,
					mapper.Copy("role", p+".kubernetes.role"),
					mapper.Copy("kubernetes-path", p+".kubernetes.kubernetes-path"),
				)
			}
			return rules
		},
	}
}

func ConfigServer() Processor {
	const p = "spring.cloud.config"
	return Processor{
		Type: "config",
		Rules: Static(
			mapper.Copy("uri", p+".uri"),
			mapper.Copy("client-id", p+".client.oauth2.client-id"),
			mapper.Copy("client-secret", p+".client.oauth2.client-secret"),
			mapper.Copy("access-token-uri", p+".client.oauth2.access-token-uri"),
		),
	}
}

func Eureka() Processor {
	const p = "eureka.client"
	return Processor{
		Type: "eureka",
		Rules: Static(
			mapper.Const(p+".region", "default"),
			mapper.Convert("uri", p+".serviceUrl.defaultZone", func(uri string) string {
				return strings.TrimRight(uri, "/") + "/eureka/"
			}),
			mapper.Copy("client-id", p+".oauth2.client-id"),
			mapper.Copy("client-secret", p+".oauth2.client-secret"),
			mapper.Copy("access-token-uri", p+".oauth2.access-token-uri"),
		),
	}
}

func Wavefront() Processor {
	const p = "management.wavefront"
	return Processor{
		Type: "wavefront",
		Rules: Static(
			mapper.Copy("api-token", p+".api-token"),
			mapper.Copy("uri", p+".uri"),
		),
	}
}

var (
	oauth2RegistrationFields = []string{
		"client-id",
		"client-secret",
		"client-authentication-method",
		"authorization-grant-type",
		"redirect-uri",
		"scope",
		"client-name",
	}
	oauth2ProviderFields = []string{
		"issuer-uri",
		"authorization-uri",
		"token-uri",
		"user-info-uri",
		"user-info-authentication-method",
		"jwk-set-uri",
		"user-name-attribute",
	}
)

// OAuth2 maps "oauth2" bindings to a client registration named after the
// binding and a provider named after the binding's provider. Bindings
// without a provider are skipped.
func OAuth2() Processor {
	const p = "spring.security.oauth2.client"
	return Processor{
		Type: "oauth2",
		Rules: func(env *Env, b *domain.Binding) []mapper.Rule {
			provider := strings.ToLower(b.Provider())
			if provider == "" {
				env.Logger.Warn("skipping oauth2 binding", "binding", b.Name(), "reason", "no provider")
				return nil
			}
			reg := p + ".registration." + b.Name()
			prov := p + ".provider." + provider

			rules := []mapper.Rule{mapper.Const(reg+".provider", provider)}
			for _, f := range oauth2RegistrationFields {
				rules = append(rules, mapper.Copy(f, reg+"."+f))
			}
			for _, f := range oauth2ProviderFields {
				rules = append(rules, mapper.Copy(f, prov+"."+f))
			}
			return rules
		},
	}
}
