package urlcompose

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Secret field names read by the composer.
const (
	KeySSLMode     = "sslmode"
	KeySSLRootCert = "sslrootcert"
	KeyOptions     = "options"
)

// Composer builds URLs for one database family.
type Composer struct {
	family Family
	spec   familySpec
	driver DriverFamily
}

// New returns a Composer for family. driver only affects MySQL-compatible
// R2DBC URLs. It panics on an unknown family, which is a table error.
func New(family Family, driver DriverFamily) Composer {
	spec, ok := families[family]
	if !ok {
		panic(fmt.Sprintf("urlcompose: unknown family %q", family))
	}
	if driver == "" {
		driver = DriverMySQL
	}
	return Composer{family: family, spec: spec, driver: driver}
}

// Family returns the database family.
func (c Composer) Family() Family {
	return c.family
}

// DriverClassName returns the JDBC driver class.
func (c Composer) DriverClassName() string {
	return c.spec.driver
}

// JDBC returns the base JDBC URL without query.
func (c Composer) JDBC(host, port, database string) string {
	return fmt.Sprintf(c.spec.jdbc, host, port, database)
}

// R2DBC returns the base R2DBC URL without query.
func (c Composer) R2DBC(host, port, database string) string {
	switch c.family {
	case MySQL, MariaDB:
		return fmt.Sprintf(c.spec.r2dbc, c.protocol(), host, port, database)
	}
	return fmt.Sprintf(c.spec.r2dbc, host, port, database)
}

func (c Composer) protocol() string {
	if c.family == MariaDB || c.driver == DriverMariaDB {
		return string(DriverMariaDB)
	}
	return string(DriverMySQL)
}

// Query returns the URL query suffix for a binding, including the leading
// "?", or "" when there is nothing to append. Only PostgreSQL-family
// databases carry a query.
//
// Fragments are joined with "&" in the order sslmode, sslrootcert, options.
// sslrootcert is resolved against bindingPath, since the certificate file is
// mounted beside the binding.
func (c Composer) Query(secret map[string]string, bindingPath string) string {
	if !c.spec.query {
		return ""
	}

	var parts []string
	if v := secret[KeySSLMode]; v != "" {
		parts = append(parts, KeySSLMode+"="+v)
	}
	if v := secret[KeySSLRootCert]; v != "" {
		parts = append(parts, KeySSLRootCert+"="+resolveBeside(bindingPath, v))
	}
	if v := ParseOptions(secret[KeyOptions]); v != "" {
		parts = append(parts, v)
	}

	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// JDBCFunc returns a three-argument builder for mapper.Compose that appends
// the binding's query to the JDBC URL.
func (c Composer) JDBCFunc(secret map[string]string, bindingPath string) func(host, port, database string) string {
	query := c.Query(secret, bindingPath)
	return func(host, port, database string) string {
		return c.JDBC(host, port, database) + query
	}
}

// R2DBCFunc is JDBCFunc for R2DBC URLs.
func (c Composer) R2DBCFunc(secret map[string]string, bindingPath string) func(host, port, database string) string {
	query := c.Query(secret, bindingPath)
	return func(host, port, database string) string {
		return c.R2DBC(host, port, database) + query
	}
}

func resolveBeside(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
