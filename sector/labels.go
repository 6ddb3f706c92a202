// SPDX-License-Identifier: MIT

package sector

// GenerateLabels returns k spreadsheet-style labels: A..Z, AA, AB, …
// k <= 0 yields nil.
func GenerateLabels(k int) []Label {
	if k <= 0 {
		return nil
	}
	out := make([]Label, k)
	for i := 0; i < k; i++ {
		out[i] = Label(columnName(i))
	}

	return out
}

// columnName converts a zero-based index into bijective base-26 letters.
func columnName(i int) string {
	var buf [16]byte
	pos := len(buf)
	n := i + 1
	for n > 0 {
		n--
		pos--
		buf[pos] = byte('A' + n%26)
		n /= 26
	}

	return string(buf[pos:])
}

// resolveLabels validates a caller alphabet or generates one.
func resolveLabels(labels []Label, k int) ([]Label, error) {
	if labels == nil {
		return GenerateLabels(k), nil
	}
	if len(labels) != k {
		return nil, ErrLabelCount
	}
	seen := make(map[Label]struct{}, k)
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, ErrLabelCount
		}
		seen[l] = struct{}{}
	}
	out := make([]Label, k)
	copy(out, labels)

	return out, nil
}
