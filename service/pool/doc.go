// Package pool loads reserved identifier pools from any location supported by
// github.com/viant/afs. A pool document is YAML (or JSON) holding either a bare
// list of integers or a mapping with an `ids` list:
//
//	ids: [5, 7, 9]
//
// The order is preserved; providers hand out the last element first.
package pool
