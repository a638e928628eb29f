package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW         = 87  // W key (ASCII)
	KeyA         = 65  // A key (ASCII)
	KeyS         = 83  // S key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyR         = 82  // R key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
)

// Arrow keys (GLFW)
const (
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)

// KeyName returns a short human readable name for the key codes above, used in log fields.
func KeyName(code uint32) string {
	switch code {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEsc:
		return "escape"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	}
	if code >= 32 && code < 127 {
		return string(rune(code))
	}
	return "unknown"
}
