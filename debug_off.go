//go:build !bytebuf_debug

package bytebuf

// debugChecks re-enables bounds assertions on the unchecked path as panics.
// Off in production builds; enable with -tags bytebuf_debug.
const debugChecks = false
