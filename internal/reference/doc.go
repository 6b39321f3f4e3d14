// Package reference holds the static reference tables the audit
// handlers draw their labels, playbooks, and thresholds from.
//
// The tables are embedded into the binary from tables.yaml and parsed
// once at startup. Load validates that every table is present and that
// scoring bands cover the full 0-100 scale; an incomplete table set is
// a startup failure, not something to discover mid-session.
//
// Keeping the prose in a data file rather than in handler code means
// the handlers stay pure scoring logic and the wording can be reviewed
// (or translated) without touching Go source.
package reference
