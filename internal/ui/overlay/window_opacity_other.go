//go:build !windows

package overlay

// applyNativeOpacity is a no-op where fyne exposes no layered window API;
// the rounded, dimmed backdrop is drawn opaque instead.
func (overlay *Window) applyNativeOpacity(uint8) {}
