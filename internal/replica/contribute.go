package replica

import (
	"fmt"

	"github.com/sufield/svcbind/internal/domain"
	"github.com/sufield/svcbind/internal/mapper"
	"github.com/sufield/svcbind/internal/urlcompose"
)

// Property prefixes for replicated datasources. Keys are
// "<prefix>.<index>.name" and "<prefix>.<index>.<role>.<field>".
const (
	JDBCPrefix  = "spring.datasource.replicas"
	R2DBCPrefix = "spring.r2dbc.replicas"
)

// Secret fields that override composed URLs.
const (
	KeyJDBCURL  = "jdbc-url"
	KeyR2DBCURL = "r2dbc-url"
)

// Contribute writes the properties of every group into props. Members are
// processed in group order; a later member with the same role overwrites an
// earlier one.
func Contribute(groups []Group, composer urlcompose.Composer, props domain.Properties) {
	for _, g := range groups {
		props.Set(fmt.Sprintf("%s.%d.name", JDBCPrefix, g.Index), g.Name)

		for _, m := range g.Members {
			secret := m.Binding.Secret()
			jdbc := fmt.Sprintf("%s.%d.%s", JDBCPrefix, g.Index, m.Role)
			r2dbc := fmt.Sprintf("%s.%d.%s", R2DBCPrefix, g.Index, m.Role)

			mapper.Apply(mapper.New(secret, props), []mapper.Rule{
				mapper.Copy("username", jdbc+".username"),
				mapper.Copy("password", jdbc+".password"),
				mapper.Const(jdbc+".driver-class-name", composer.DriverClassName()),
				mapper.Compose("host", "port", "database", jdbc+".url", composer.JDBCFunc(secret, m.Binding.Path())),
				mapper.Copy(KeyJDBCURL, jdbc+".url"),

				mapper.Copy("username", r2dbc+".username"),
				mapper.Copy("password", r2dbc+".password"),
				mapper.Compose("host", "port", "database", r2dbc+".url", composer.R2DBCFunc(secret, m.Binding.Path())),
				mapper.Copy(KeyR2DBCURL, r2dbc+".url"),
			})
		}
	}
}
