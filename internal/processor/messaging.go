package processor

import (
	"strings"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
)

// Kafka maps "kafka" bindings. TLS material becomes SSL stores and switches
// the security protocol to SSL unless the binding names one.
func Kafka() Processor {
	const p = "spring.kafka"
	return Processor{
		Type: "kafka",
		Rules: Static(
			mapper.Copy("bootstrap-servers", p+".bootstrap-servers"),
			mapper.Copy("consumer.bootstrap-servers", p+".consumer.bootstrap-servers"),
			mapper.Copy("producer.bootstrap-servers", p+".producer.bootstrap-servers"),
			mapper.Copy("streams.bootstrap-servers", p+".streams.bootstrap-servers"),
			mapper.Convert("security.protocol", p+".security.protocol", strings.ToUpper),
			mapper.Copy("sasl.mechanism", p+".properties.sasl.mechanism"),
			mapper.Copy("sasl.jaas.config", p+".properties.sasl.jaas.config"),
		),
		Contribute: func(env *Env, b *domain.Binding, props domain.Properties) error {
			stores, err := env.synthesizeTLS(b)
			if err != nil {
				return err
			}
			if !stores.any() {
				return nil
			}
			recordStore(props, storeKeys{
				location: p + ".ssl.trust-store-location",
				password: p + ".ssl.trust-store-password",
				typ:      p + ".ssl.trust-store-type",
			}, stores.trust)
			recordStore(props, storeKeys{
				location:    p + ".ssl.key-store-location",
				password:    p + ".ssl.key-store-password",
				typ:         p + ".ssl.key-store-type",
				keyPassword: p + ".ssl.key-password",
			}, stores.key)
			if !props.Has(p + ".security.protocol") {
				props.Set(p+".security.protocol", "SSL")
			}
			return nil
		},
	}
}

// RabbitMQ maps "rabbitmq" bindings.
func RabbitMQ() Processor {
	const p = "spring.rabbitmq"
	return Processor{
		Type: "rabbitmq",
		Rules: Static(
			mapper.Copy("addresses", p+".addresses"),
			mapper.Copy("host", p+".host"),
			mapper.Copy("port", p+".port"),
			mapper.Copy("username", p+".username"),
			mapper.Copy("password", p+".password"),
			mapper.Copy("virtual-host", p+".virtual-host"),
			mapper.Convert("ssl", p+".ssl.enabled", strings.ToLower),
		),
		Contribute: func(env *Env, b *domain.Binding, props domain.Properties) error {
			stores, err := env.synthesizeTLS(b)
			if err != nil {
				return err
			}
			if !stores.any() {
				return nil
			}
			recordStore(props, storeKeys{
				location: p + ".ssl.trust-store",
				password: p + ".ssl.trust-store-password",
				typ:      p + ".ssl.trust-store-type",
			}, stores.trust)
			recordStore(props, storeKeys{
				location: p + ".ssl.key-store",
				password: p + ".ssl.key-store-password",
				typ:      p + ".ssl.key-store-type",
			}, stores.key)
			props.Set(p+".ssl.enabled", "true")
			return nil
		},
	}
}

// Artemis maps "artemis" bindings.
func Artemis() Processor {
	const p = "spring.artemis"
	return Processor{
		Type: "artemis",
		Rules: Static(
			mapper.Convert("mode", p+".mode", strings.ToUpper),
			mapper.Copy("broker-url", p+".broker-url"),
			mapper.Copy("user", p+".user"),
			mapper.Copy("password", p+".password"),
		),
	}
}
