package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

// blitWGSL draws a full-screen triangle sampling the preserved offscreen
// texture onto the drawable.
const blitWGSL = `
@group(0) @binding(0) var src: texture_2d<f32>;
@group(0) @binding(1) var src_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    let corner = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    var out: VertexOutput;
    out.position = vec4<f32>(corner * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(corner.x, 1.0 - corner.y);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(src, src_sampler, in.uv);
}
`

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(source string) ([]uint32, error) {
	bytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile shader: SPIR-V length %d not word aligned", len(bytes))
	}
	words := make([]uint32, len(bytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(bytes[i*4:])
	}
	return words, nil
}

func createBlitModule(device *wgpu.Device) (*wgpu.ShaderModule, error) {
	spirv, err := compileSPIRV(blitWGSL)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "ggwin.blit",
		SPIRV: spirv,
	})
}
