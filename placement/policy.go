package placement

import (
	"fmt"
	"strings"
)

// Mode selects how decorations may be transformed by the user.
type Mode string

const (
	// ModeSizeLocked fixes every decoration at its physical target size; rotate only.
	ModeSizeLocked Mode = "size-locked"
	// ModeFreeTransform allows resizing through a scale factor.
	ModeFreeTransform Mode = "free-transform"
)

// ParseMode maps a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSizeLocked, "locked", "":
		return ModeSizeLocked, nil
	case ModeFreeTransform, "free":
		return ModeFreeTransform, nil
	}
	return "", fmt.Errorf("unknown placement policy %q (expected %q or %q)", s, ModeSizeLocked, ModeFreeTransform)
}

// Policy is the placement policy selected at startup.
type Policy struct {
	Mode        Mode `json:"mode"`
	TintOverlay bool `json:"tintOverlay"`
}

// ResizeEnabled reports whether resize handles are exposed.
func (p Policy) ResizeEnabled() bool {
	return p.Mode == ModeFreeTransform
}

// RotateEnabled reports whether rotation is exposed. Both modes rotate.
func (p Policy) RotateEnabled() bool {
	return true
}
