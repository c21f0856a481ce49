// Package group provides persistence for user-defined device groups.
//
// A group maps a generated identifier to a spoken name; a membership
// assigns a remote device to a group. Both live in SQLite and expose
// only the operations the command pipeline needs: scan-all and
// insert-or-overwrite.
//
// # Uniqueness
//
// The store deliberately does not enforce group-name uniqueness. The
// pipeline performs a fuzzy lookup-before-insert conflict check so that
// near-duplicate spoken names ("kithen" vs "Kitchen") are rejected,
// which a database constraint on the literal name could never catch.
// The cost is a race window between check and insert under concurrent
// writers; see the pipeline tests.
//
// # Usage
//
//	store := group.NewSQLiteStore(db.DB)
//	groups, err := store.ScanGroups(ctx)
package group
