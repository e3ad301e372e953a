// Package grimoire resolves free-text queries to canonical grimoire content
// slugs.
//
// An Index is built once from the content catalog and is safe for concurrent
// use. Resolution tries four tiers in a fixed order and the first hit wins:
//
//	exact    the query is a known slug, optionally with a "#anchor" suffix
//	title    the normalized query equals an entry's display title
//	alias    the normalized query equals one of the entry's aliases
//	keyword  the normalized query equals one of the entry's keywords
//
// Resolve never fails; unknown input yields a MatchNone result with a nil slug.
package grimoire
