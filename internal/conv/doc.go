// Package conv provides checked integer conversions for offset and size
// arithmetic at the boundary between int64 buffer offsets and int-sized OS
// interfaces.
package conv
