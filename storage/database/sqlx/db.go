// Package sqlxrepos implements the core repositories on top of PostgreSQL
// via jmoiron/sqlx.
package sqlxrepos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sajidbaba1/fithub/core"
)

// ext resolves the executor for one call: a service-provided transaction when
// present, the pooled connection otherwise. *sqlx.Tx satisfies both
// core.DBExecutor and sqlx.ExtContext.
func ext(db *sqlx.DB, svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if e, ok := svcExec[0].(sqlx.ExtContext); ok {
			return e
		}
	}
	return db
}

func orderBy(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return ""
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

// where builds a WHERE clause from the accumulated conditions.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
