// Package projection derives the read models shown on the front-desk screens
// from raw store collections. Every function is pure: inputs are never
// mutated and the same inputs always yield the same rows.
package projection
