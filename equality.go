package bytebuf

// ContentEqual reports whether the remaining unread byte sequences of a and b
// are identical. Backing store kinds may differ; comparison runs a 64-bit
// word at a time with a byte-wise tail and never moves the cursors.
func ContentEqual(a, b Bytes) (bool, error) {
	remaining := a.ReadRemaining()
	if remaining != b.ReadRemaining() {
		return false, nil
	}

	aPos := a.ReadPosition()
	bPos := b.ReadPosition()

	var i int64
	for ; i+8 <= remaining; i += 8 {
		av, err := a.ReadInt64At(aPos + i)
		if err != nil {
			return false, err
		}
		bv, err := b.ReadInt64At(bPos + i)
		if err != nil {
			return false, err
		}
		if av != bv {
			return false, nil
		}
	}
	for ; i < remaining; i++ {
		av, err := a.ReadByteAt(aPos + i)
		if err != nil {
			return false, err
		}
		bv, err := b.ReadByteAt(bPos + i)
		if err != nil {
			return false, err
		}
		if av != bv {
			return false, nil
		}
	}
	return true, nil
}
