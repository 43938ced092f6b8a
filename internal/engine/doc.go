// Package engine is the warehouse capacity calculation engine. Every function
// is a pure computation over its arguments: no shared state, no I/O and no
// wall-clock dependency, so calls are safe from any number of goroutines.
//
// Compute runs the full pipeline:
//
//	resolve area -> allocate areas -> bay geometry -> bay count (module or
//	empirical) -> rack volume -> mezzanine volume -> total capacity ->
//	pallet positions -> derived metrics -> bill of quantities -> validation
//
// Each stage is also exported for direct use.
package engine
