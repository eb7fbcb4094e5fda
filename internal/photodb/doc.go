// Package photodb implements a read-only, schema-adaptive query engine over
// the Photos library SQLite store.
//
// The Store opens one read-only connection per invocation and inspects the
// live catalog before issuing any query: the album/asset join table is renamed
// across Photos releases, and several columns exist only in some schema
// versions. Discovery results are scoped to the connection and consumed by the
// query layer as data, so queries degrade to a reduced predicate set instead
// of failing when an optional column is absent.
//
// The package never writes to the store. Timestamps arrive as float seconds
// since the 2001-01-01 epoch and coordinates carry "unset" sentinels; both are
// normalized here so callers only ever see standard values or explicit
// absence.
package photodb
