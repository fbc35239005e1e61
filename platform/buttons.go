package platform

import "github.com/gogpu/gpucontext"

// ButtonsFor returns the pressed-button bit for a single button.
func ButtonsFor(b gpucontext.Button) gpucontext.Buttons {
	if b < 0 || b > gpucontext.ButtonEraser {
		return gpucontext.ButtonsNone
	}
	// Buttons bits are ordered left, right, middle; Button values are
	// ordered left, middle, right.
	switch b {
	case gpucontext.ButtonMiddle:
		return gpucontext.ButtonsMiddle
	case gpucontext.ButtonRight:
		return gpucontext.ButtonsRight
	default:
		return gpucontext.Buttons(1) << uint(b)
	}
}
