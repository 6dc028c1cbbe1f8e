package processor

import (
	"strings"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
)

func MongoDB() Processor {
	const p = "spring.data.mongodb"
	return Processor{
		Type: "mongodb",
		Rules: Static(
			mapper.Copy("authentication-database", p+".authentication-database"),
			mapper.Copy("database", p+".database"),
			mapper.Copy("grid-fs-database", p+".gridfs.database"),
			mapper.Copy("host", p+".host"),
			mapper.Copy("port", p+".port"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
			mapper.Copy("uri", p+".uri"),
		),
	}
}

// Redis maps "redis" bindings. TLS material is published as an SSL bundle
// named after the binding.
func Redis() Processor {
	const p = "spring.data.redis"
	return Processor{
		Type: "redis",
		Rules: Static(
			mapper.Copy("client-name", p+".client-name"),
			mapper.Copy("cluster.max-redirects", p+".cluster.max-redirects"),
			mapper.Copy("cluster.nodes", p+".cluster.nodes"),
			mapper.Copy("database", p+".database"),
			mapper.Copy("host", p+".host"),
			mapper.Copy("port", p+".port"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
			mapper.Copy("sentinel.master", p+".sentinel.master"),
			mapper.Copy("sentinel.nodes", p+".sentinel.nodes"),
			mapper.Convert("ssl", p+".ssl.enabled", strings.ToLower),
			mapper.Copy("url", p+".url"),
		),
		Contribute: func(env *Env, b *domain.Binding, props domain.Properties) error {
			stores, err := env.synthesizeTLS(b)
			if err != nil {
				return err
			}
			if !stores.any() {
				return nil
			}
			bundle := "svcbind-" + b.Name()
			bp := "spring.ssl.bundle.jks." + bundle
			recordStore(props, storeKeys{
				location: bp + ".truststore.location",
				password: bp + ".truststore.password",
				typ:      bp + ".truststore.type",
			}, stores.trust)
			recordStore(props, storeKeys{
				location: bp + ".keystore.location",
				password: bp + ".keystore.password",
				typ:      bp + ".keystore.type",
			}, stores.key)
			props.Set(p+".ssl.enabled", "true")
			props.Set(p+".ssl.bundle", bundle)
			return nil
		},
	}
}

func Cassandra() Processor {
	const p = "spring.cassandra"
	return Processor{
		Type: "cassandra",
		Rules: Static(
			mapper.Copy("compression", p+".compression"),
			mapper.Copy("contact-points", p+".contact-points"),
			mapper.Copy("keyspace-name", p+".keyspace-name"),
			mapper.Copy("local-datacenter", p+".local-datacenter"),
			mapper.Copy("port", p+".port"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
			mapper.Convert("ssl", p+".ssl.enabled", strings.ToLower),
		),
	}
}

// Couchbase maps "couchbase" bindings. A legacy bootstrap-hosts list is
// used only when no connection-string is bound.
func Couchbase() Processor {
	const p = "spring.couchbase"
	return Processor{
		Type: "couchbase",
		Rules: Static(
			mapper.Convert("bootstrap-hosts", p+".connection-string", func(hosts string) string {
				return "couchbase://" + hosts
			}).If(mapper.NonEmpty),
			mapper.Copy("connection-string", p+".connection-string"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
			mapper.Copy("bucket.name", "spring.data.couchbase.bucket-name"),
		),
	}
}

func Elasticsearch() Processor {
	const p = "spring.elasticsearch"
	return Processor{
		Type: "elasticsearch",
		Rules: Static(
			mapper.Copy("endpoints", p+".uris"),
			mapper.Copy("uris", p+".uris"),
			mapper.Copy("path-prefix", p+".path-prefix"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
		),
	}
}

func Neo4j() Processor {
	const p = "spring.neo4j"
	return Processor{
		Type: "neo4j",
		Rules: Static(
			mapper.Copy("uri", p+".uri"),
			mapper.Copy("username", p+".authentication.username"),
			mapper.Copy("password", p+".authentication.password"),
		),
	}
}

func LDAP() Processor {
	const p = "spring.ldap"
	return Processor{
		Type: "ldap",
		Rules: Static(
			mapper.Copy("base", p+".base"),
			mapper.Copy("urls", p+".urls"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
		),
	}
}
