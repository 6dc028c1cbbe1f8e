package processor

// Table returns every built-in processor in registration order. Processors
// that write the same key resolve by this order, last one winning.
func Table() []Processor {
	return []Processor{
		Artemis(),
		Cassandra(),
		ConfigServer(),
		Couchbase(),
		DB2(),
		Elasticsearch(),
		Eureka(),
		Kafka(),
		LDAP(),
		MariaDB(),
		MongoDB(),
		MySQL(),
		MySQLReplicated(),
		Neo4j(),
		OAuth2(),
		Oracle(),
		PostgreSQL(),
		CockroachDB(),
		PostgreSQLReplicated(),
		RabbitMQ(),
		Redis(),
		SPIFFE(),
		SQLServer(),
		Vault(),
		Wavefront(),
	}
}

// Types returns the binding types handled by Table, in registration order.
func Types() []string {
	table := Table()
	out := make([]string, 0, len(table))
	for _, p := range table {
		out = append(out, p.Key())
	}
	return out
}
