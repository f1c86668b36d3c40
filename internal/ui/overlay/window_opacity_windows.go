//go:build windows

package overlay

import (
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const (
	gwlExStyle   int32 = -20
	wsExLayered        = 0x00080000
	wsExToolWind       = 0x00000080
	lwaAlpha           = 0x2
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procGetWindowLongPtrW          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the whole widget translucent and keeps it out of
// the taskbar.
func (overlay *Window) applyNativeOpacity(alpha uint8) {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		hwnd := windowHandle(context)
		if hwnd == 0 {
			return
		}
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, exStyleIndex())
		want := style | wsExLayered | wsExToolWind
		if style != want {
			procSetWindowLongPtrW.Call(hwnd, exStyleIndex(), want)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		return value.HWND
	default:
		return 0
	}
}

func exStyleIndex() uintptr {
	return uintptr(uint32(gwlExStyle))
}
