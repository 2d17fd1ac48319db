package idgen

import (
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
)

// Scale is the multiplier applied to a uniform [0,1) draw by Random.
const Scale = 1e11

// Source draws a candidate identifier.
type Source func() int64

// Float64Func returns a pseudo-random number in [0,1). Override in tests.
var Float64Func = rand.Float64

// UUIDFunc returns a random UUID. Override in tests.
var UUIDFunc = uuid.New

// Random returns an identifier in [0, Scale).
func Random() int64 { return int64(Scale * Float64Func()) }

// Wide returns a non-negative identifier taken from the leading 63 bits of a
// random (v4) UUID.
func Wide() int64 {
	u := UUIDFunc()
	return int64(binary.BigEndian.Uint64(u[:8]) >> 1)
}

// Named resolves a source by its configuration name. Empty name selects Random.
func Named(name string) (Source, bool) {
	switch name {
	case "", "random":
		return Random, true
	case "wide":
		return Wide, true
	}
	return nil, false
}
