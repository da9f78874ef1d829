//go:build bytebuf_debug

package bytebuf

const debugChecks = true
