// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// blitPipeline copies a sampled texture onto a render attachment with a
// single full-screen triangle.
type blitPipeline struct {
	module     *wgpu.ShaderModule
	layout     *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	pipeline   *wgpu.RenderPipeline
	sampler    *wgpu.Sampler
}

func newBlitPipeline(device *wgpu.Device) (*blitPipeline, error) {
	b := &blitPipeline{}
	if err := b.init(device); err != nil {
		b.release()
		return nil, err
	}
	return b, nil
}

func (b *blitPipeline) init(device *wgpu.Device) error {
	module, err := createBlitModule(device)
	if err != nil {
		return err
	}
	b.module = module

	b.layout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ggwin_blit_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit bind group layout: %w", err)
	}

	b.pipeLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "ggwin_blit_pipe_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit pipeline layout: %w", err)
	}

	b.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "ggwin_blit_pipeline",
		Layout: b.pipeLayout,
		Vertex: wgpu.VertexState{
			Module:     b.module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit pipeline: %w", err)
	}

	// Drawables and offscreens always match in size, so nearest
	// sampling is an exact copy.
	b.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "ggwin_blit_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("gpu: create blit sampler: %w", err)
	}
	return nil
}

// bindGroup binds src for sampling by the pipeline.
func (b *blitPipeline) bindGroup(device *wgpu.Device, src *wgpu.TextureView) (*wgpu.BindGroup, error) {
	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ggwin_blit_bind_group",
		Layout: b.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: src},
			{Binding: 1, Sampler: b.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create blit bind group: %w", err)
	}
	return bg, nil
}

// record encodes one render pass drawing the bound source over dst.
func (b *blitPipeline) record(encoder *wgpu.CommandEncoder, dst *wgpu.TextureView, src *wgpu.BindGroup) error {
	rp, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ggwin_blit_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       dst,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: begin blit pass: %w", err)
	}
	rp.SetPipeline(b.pipeline)
	rp.SetBindGroup(0, src, nil)
	rp.Draw(3, 1, 0, 0)
	if err := rp.End(); err != nil {
		return fmt.Errorf("gpu: end blit pass: %w", err)
	}
	return nil
}

func (b *blitPipeline) release() {
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		b.pipeLayout.Release()
		b.pipeLayout = nil
	}
	if b.layout != nil {
		b.layout.Release()
		b.layout = nil
	}
	if b.module != nil {
		b.module.Release()
		b.module = nil
	}
}
