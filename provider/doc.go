// Package provider implements the identifier allocator handed to every object
// that needs an integer ID.
//
// A Provider first drains an optional pool of reserved identifiers in
// last-in-first-out order and then falls back to random draws, regenerating
// any candidate it has already issued:
//
//	p := provider.New([]int64{5, 7, 9})
//	p.Pop() // 9
//	p.Pop() // 7
//	p.Pop() // 5
//	p.Pop() // random, never equal to a previously issued value
//
// Providers are plain values; construct one per scope and pass it to the
// components that allocate identifiers. Two providers never share state and
// may hand out overlapping identifiers.
package provider
