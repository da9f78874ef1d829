package bytebuf

import (
	"fmt"
	"strings"
)

// truncatedMarker terminates a hex dump cut short by maxLength.
const truncatedMarker = "... truncated"

// HexDump renders the unread byte range of b as space-separated two-digit
// hex octets. At most maxLength bytes are rendered; a longer window is cut
// with an explicit marker. The cursors are not moved.
func HexDump(b Bytes, maxLength int64) (string, error) {
	remaining := b.ReadRemaining()
	truncated := false
	if maxLength >= 0 && remaining > maxLength {
		remaining = maxLength
		truncated = true
	}

	var sb strings.Builder
	pos := b.ReadPosition()
	for i := int64(0); i < remaining; i++ {
		v, err := b.ReadByteAt(pos + i)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	if truncated {
		if remaining > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(truncatedMarker)
	}
	return sb.String(), nil
}
