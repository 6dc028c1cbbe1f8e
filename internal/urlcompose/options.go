package urlcompose

import "strings"

const clusterKey = "--cluster"

// ParseOptions turns a binding "options" value ("k1=v1&k2=v2") into a
// PostgreSQL options query fragment.
//
// Pairs without exactly one "=" or with an empty key or value are dropped.
// A "--cluster" pair is a CockroachDB routing directive; it is kept as
// "--cluster=<value>" and placed first. Every other pair becomes
// "-c k=v". The result is "options=<tokens joined by spaces>", or "" when
// no pair survives.
func ParseOptions(s string) string {
	if s == "" {
		return ""
	}

	var cluster, settings []string
	for _, pair := range strings.Split(s, "&") {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}
		if kv[0] == clusterKey {
			cluster = append(cluster, clusterKey+"="+kv[1])
			continue
		}
		settings = append(settings, "-c "+kv[0]+"="+kv[1])
	}

	tokens := append(cluster, settings...)
	if len(tokens) == 0 {
		return ""
	}
	return "options=" + strings.Join(tokens, " ")
}
