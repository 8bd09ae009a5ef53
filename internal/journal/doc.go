// Package journal persists one row per pipeline run in SQLite.
//
// Each run records its trigger, status lifecycle, final outcome, and the
// version it acted on, giving `shipwright status` a history to render and
// operators an audit trail for failed runs. The database is an operational
// record, not a source of truth: metadata and feed files in the repository
// stay canonical.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package journal
