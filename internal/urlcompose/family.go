// Package urlcompose builds JDBC and R2DBC connection URLs from binding
// fields and encodes the PostgreSQL-family SSL and options query.
package urlcompose

import (
	"fmt"
	"strings"
)

// Family is a database family with fixed URL schemes and driver classes.
type Family string

const (
	PostgreSQL  Family = "postgresql"
	CockroachDB Family = "cockroachdb"
	Oracle      Family = "oracle"
	DB2         Family = "db2"
	MySQL       Family = "mysql"
	MariaDB     Family = "mariadb"
	SQLServer   Family = "sqlserver"
)

// DriverFamily chooses the R2DBC protocol token for MySQL-compatible
// databases. It is configuration, not something detected at runtime.
type DriverFamily string

const (
	DriverMySQL   DriverFamily = "mysql"
	DriverMariaDB DriverFamily = "mariadb"
)

// ParseDriverFamily converts a configuration value. "" selects DriverMySQL.
func ParseDriverFamily(s string) (DriverFamily, error) {
	switch DriverFamily(strings.ToLower(strings.TrimSpace(s))) {
	case "", DriverMySQL:
		return DriverMySQL, nil
	case DriverMariaDB:
		return DriverMariaDB, nil
	default:
		return "", fmt.Errorf("unknown driver family %q (use %q or %q)", s, DriverMySQL, DriverMariaDB)
	}
}

type familySpec struct {
	jdbc   string
	r2dbc  string
	driver string
	query  bool
}

var families = map[Family]familySpec{
	PostgreSQL: {
		jdbc:   "jdbc:postgresql://%s:%s/%s",
		r2dbc:  "r2dbc:postgresql://%s:%s/%s",
		driver: "org.postgresql.Driver",
		query:  true,
	},
	CockroachDB: {
		jdbc:   "jdbc:postgresql://%s:%s/%s",
		r2dbc:  "r2dbc:postgresql://%s:%s/%s",
		driver: "org.postgresql.Driver",
		query:  true,
	},
	Oracle: {
		jdbc:   "jdbc:oracle:thin:@%s:%s/%s",
		r2dbc:  "r2dbc:oracle://%s:%s/%s",
		driver: "oracle.jdbc.OracleDriver",
	},
	DB2: {
		jdbc:   "jdbc:db2://%s:%s/%s",
		r2dbc:  "r2dbc:db2://%s:%s/%s",
		driver: "com.ibm.db2.jcc.DB2Driver",
	},
	MySQL: {
		jdbc:   "jdbc:mysql://%s:%s/%s",
		r2dbc:  "r2dbc:%s://%s:%s/%s",
		driver: "com.mysql.cj.jdbc.Driver",
	},
	MariaDB: {
		jdbc:   "jdbc:mariadb://%s:%s/%s",
		r2dbc:  "r2dbc:%s://%s:%s/%s",
		driver: "org.mariadb.jdbc.Driver",
	},
	SQLServer: {
		jdbc:   "jdbc:sqlserver://%s:%s;database=%s",
		r2dbc:  "r2dbc:sqlserver://%s:%s/%s",
		driver: "com.microsoft.sqlserver.jdbc.SQLServerDriver",
	},
}

// ParseFamily converts a family name, case-insensitively.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := families[f]; !ok {
		return "", fmt.Errorf("unknown database family %q", s)
	}
	return f, nil
}
