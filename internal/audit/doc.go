// Package audit implements the five brand-analysis routines exposed as
// MCP tools: perception audit, citation check, competitor comparison,
// entity clarity score, and geographic recommendations.
//
// # Determinism
//
// Every routine is a pure function of its inputs plus the static
// reference tables: no I/O, no clock, no randomness. Calling a routine
// twice with identical inputs yields byte-identical results, including
// the audit ID, which is a SHA1-namespace UUID over the tool name and
// canonical inputs.
//
// # Scoring
//
// All scores live on a 0-100 scale. The core Score function hashes its
// input into [40, 90]; per-tool thresholds (citation 65, geo 62) and
// the band tables in package reference turn raw scores into verdicts.
// These are demonstration heuristics: stable, explainable placeholders
// for signals a real visibility pipeline would measure.
//
// # Ordering
//
// Routines that take a sequence (citation topics, target locations)
// return exactly one entry per input, in input order. The competitor
// ranking is sorted by score descending with ties broken by name.
package audit
