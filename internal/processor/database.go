package processor

import (
	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Datasource property keys.
const (
	DataSourcePrefix = "spring.datasource"
	R2DBCPrefix      = "spring.r2dbc"
)

// database builds a processor for a relational type. The composed URL is
// written first so an explicit jdbc-url or r2dbc-url overrides it.
func database(typ string, family urlcompose.Family) Processor {
	return Processor{
		Type: typ,
		Rules: func(env *Env, b *domain.Binding) []mapper.Rule {
			c := urlcompose.New(family, env.Driver)
			secret := b.Secret()
			return []mapper.Rule{
				mapper.Copy("username", DataSourcePrefix+".username"),
				mapper.Copy("password", DataSourcePrefix+".password"),
				mapper.Const(DataSourcePrefix+".driver-class-name", c.DriverClassName()),
				mapper.Compose("host", "port", "database", DataSourcePrefix+".url", c.JDBCFunc(secret, b.Path())),
				mapper.Copy("jdbc-url", DataSourcePrefix+".url"),

				mapper.Copy("username", R2DBCPrefix+".username"),
				mapper.Copy("password", R2DBCPrefix+".password"),
				mapper.Compose("host", "port", "database", R2DBCPrefix+".url", c.R2DBCFunc(secret, b.Path())),
				mapper.Copy("r2dbc-url", R2DBCPrefix+".url"),
			}
		},
	}
}

func PostgreSQL() Processor  { return database("postgresql", urlcompose.PostgreSQL) }
func CockroachDB() Processor { return database("cockroachdb", urlcompose.CockroachDB) }
func MySQL() Processor       { return database("mysql", urlcompose.MySQL) }
func MariaDB() Processor     { return database("mariadb", urlcompose.MariaDB) }
func Oracle() Processor      { return database("oracle", urlcompose.Oracle) }
func DB2() Processor         { return database("db2", urlcompose.DB2) }
func SQLServer() Processor   { return database("sqlserver", urlcompose.SQLServer) }
