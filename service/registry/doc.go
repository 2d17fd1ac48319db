// Package registry keeps one identifier provider per named scope. A registry is
// an ordinary value: construct it where the scopes are owned and pass it to
// whoever needs to allocate identifiers.
package registry
