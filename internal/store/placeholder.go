package store

import (
	"fmt"
	"strings"
)

// Named rewrites squirrel's "?" placeholders into ":p1", ":p2", ... as
// required by the RDS Data API. "??" is an escaped literal question mark.
var Named = namedPlaceholder{}

type namedPlaceholder struct{}

func (namedPlaceholder) ReplacePlaceholders(sql string) (string, error) {
	var buf strings.Builder
	n := 0
	for {
		p := strings.Index(sql, "?")
		if p == -1 {
			break
		}
		if len(sql[p:]) > 1 && sql[p:p+2] == "??" {
			buf.WriteString(sql[:p])
			buf.WriteString("?")
			sql = sql[p+2:]
			continue
		}
		n++
		buf.WriteString(sql[:p])
		fmt.Fprintf(&buf, ":%s", paramName(n))
		sql = sql[p+1:]
	}
	buf.WriteString(sql)
	return buf.String(), nil
}

func paramName(n int) string {
	return fmt.Sprintf("p%d", n)
}
