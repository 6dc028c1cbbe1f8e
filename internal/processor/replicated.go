package processor

import (
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/replica"
	"github.com/sufield/svcbind/internal/urlcompose"
)

func replicated(typ string, family urlcompose.Family) Processor {
	return Processor{
		Type: typ,
		ContributeAll: func(env *Env, bindings []*domain.Binding, props domain.Properties) error {
			groups := replica.Correlate(bindings, env.Logger)
			replica.Contribute(groups, urlcompose.New(family, env.Driver), props)
			return nil
		},
	}
}

// PostgreSQLReplicated serves "postgresql-replicated" bindings.
func PostgreSQLReplicated() Processor {
	return replicated("postgresql-replicated", urlcompose.PostgreSQL)
}

// MySQLReplicated serves "mysql-replicated" bindings. The R2DBC protocol
// follows the configured driver family.
func MySQLReplicated() Processor {
	return replicated("mysql-replicated", urlcompose.MySQL)
}
