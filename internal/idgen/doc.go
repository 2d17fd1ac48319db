// Package idgen wraps the random number procedures used to draw identifiers so
// that they can be stubbed in tests. It lives under `internal` because callers
// should not rely on the exact distribution, only on the value range.
package idgen
