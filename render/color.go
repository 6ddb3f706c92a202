// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"strings"
)

// validHex reports whether s is #rgb, #rrggbb or #rrggbbaa.
// gg.SetHexColor silently accepts garbage, so the palette is checked up front.
func validHex(s string) bool {
	h, ok := strings.CutPrefix(s, "#")
	if !ok {
		return false
	}
	switch len(h) {
	case 3, 6, 8:
	default:
		return false
	}
	for _, r := range h {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}

// checkPalette validates every entry; an empty palette is an error too.
func checkPalette(p []string) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty palette", ErrBadColor)
	}
	for i, c := range p {
		if !validHex(c) {
			return fmt.Errorf("%w: palette[%d] = %q", ErrBadColor, i, c)
		}
	}

	return nil
}

// colorFor cycles the palette.
func colorFor(p []string, g int) string { return p[g%len(p)] }
