package gpu

import (
	// Registers the HAL backends available on this platform, including
	// the pure Go software rasterizer used when no GPU is present.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)
