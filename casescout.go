// Package casescout finds case-study and product pages on company web sites
// and extracts a title and body from each one without site-specific
// configuration. Discovery walks robots.txt and sitemaps, filters URLs by
// keyword path segments, and yields candidates lazily until a quota is met.
// Extraction applies a fixed, ordered list of heuristics and degrades to an
// empty result rather than guessing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, openai/).
package casescout
