// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/ggwin/frame"
	"github.com/gogpu/ggwin/internal/logging"
)

// Errors returned by Device operations.
var (
	// ErrNoDevice is returned when no adapter or device could be opened.
	ErrNoDevice = errors.New("gpu: no usable device")

	// ErrReleased is returned when the device has been released.
	ErrReleased = errors.New("gpu: device released")
)

// Option configures Open.
type Option func(*config)

type config struct {
	backends gputypes.Backends
	power    gputypes.PowerPreference
	fallback bool
}

// WithBackends restricts the backends considered for the adapter.
func WithBackends(b gputypes.Backends) Option {
	return func(c *config) {
		c.backends = b
	}
}

// WithPowerPreference sets the adapter power preference.
func WithPowerPreference(p gputypes.PowerPreference) Option {
	return func(c *config) {
		c.power = p
	}
}

// WithFallbackAdapter forces the software fallback adapter.
func WithFallbackAdapter() Option {
	return func(c *config) {
		c.fallback = true
	}
}

type pendingSubmit struct {
	index uint64
	cmd   *wgpu.CommandBuffer
}

// Device is the shared GPU device and queue.
//
// Device is NOT safe for concurrent use; it belongs to the thread that
// runs the application loop.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     gputypes.AdapterInfo

	blit     *blitPipeline
	surfaces map[any]*surfaceTarget
	pending  []pendingSubmit
	submits  uint64
	uploads  uint64
	blits    uint64

	released bool
}

// Open creates the instance, selects an adapter and opens its device.
func Open(opts ...Option) (*Device, error) {
	cfg := config{power: gputypes.PowerPreferenceHighPerformance}
	for _, opt := range opts {
		opt(&cfg)
	}

	var desc *wgpu.InstanceDescriptor
	if cfg.backends != gputypes.BackendsNone {
		desc = &wgpu.InstanceDescriptor{Backends: cfg.backends}
	}
	instance, err := wgpu.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrNoDevice, err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      cfg.power,
		ForceFallbackAdapter: cfg.fallback,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %v", ErrNoDevice, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrNoDevice, err)
	}

	d := &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.Queue(),
		info:     adapter.Info(),
		surfaces: make(map[any]*surfaceTarget),
	}

	// Without the blit pipeline preserved frames upload the drawable
	// pixels directly, which the CPU copy already made identical.
	if d.blit, err = newBlitPipeline(device); err != nil {
		logging.Logger().Warn("gpu: blit pipeline unavailable", "err", err)
		d.blit = nil
	}

	logging.Logger().Info("gpu: device opened",
		"adapter", d.info.Name,
		"type", d.info.DeviceType,
		"backend", d.info.Backend,
	)
	return d, nil
}

// Info returns the full adapter description.
func (d *Device) Info() gputypes.AdapterInfo { return d.info }

// HasBlit reports whether the preserve-buffer blit pipeline was built.
func (d *Device) HasBlit() bool { return d.blit != nil }

// Submissions returns the number of successful submissions.
func (d *Device) Submissions() uint64 { return d.submits }

// Uploads returns the number of submissions that uploaded the drawable.
func (d *Device) Uploads() uint64 { return d.uploads }

// Blits returns the number of submissions that blitted the offscreen
// buffer onto the drawable.
func (d *Device) Blits() uint64 { return d.blits }

// Surfaces returns the number of surfaces holding device textures.
func (d *Device) Surfaces() int { return len(d.surfaces) }

// Device implements gpucontext.DeviceProvider. It returns *wgpu.Device.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue implements gpucontext.DeviceProvider. It returns *wgpu.Queue.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter implements gpucontext.DeviceProvider. It returns *wgpu.Adapter.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// SurfaceFormat implements gpucontext.DeviceProvider. Drawables are RGBA8.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// AdapterInfo implements gpucontext.DeviceProvider.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: adapterType(d.info.DeviceType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Submit mirrors one presented frame into device textures and submits
// the command buffer. A preserving presentation uploads the offscreen
// buffer and blits it onto the drawable; otherwise the drawable pixels
// are uploaded as is. Command buffers of earlier submissions are
// released once the queue reports them complete.
func (d *Device) Submit(p frame.Presentation) error {
	if d.released {
		return ErrReleased
	}
	if p.Drawable == nil {
		return fmt.Errorf("gpu: submit %s: no drawable", p.Label)
	}
	w, h := uint32(p.Drawable.Width()), uint32(p.Drawable.Height())
	if w == 0 || h == 0 {
		return nil
	}
	d.reclaim()

	target, err := d.target(p.Surface, w, h)
	if err != nil {
		return err
	}

	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: p.Label})
	if err != nil {
		return fmt.Errorf("gpu: create encoder: %w", err)
	}
	blitted, err := d.encode(encoder, target, p)
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: %s: %w", p.Label, err)
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("gpu: finish %s: %w", p.Label, err)
	}
	index, err := d.queue.Submit(cmd)
	if err != nil {
		cmd.Release()
		return fmt.Errorf("gpu: submit %s: %w", p.Label, err)
	}
	d.pending = append(d.pending, pendingSubmit{index: index, cmd: cmd})
	d.submits++
	if blitted {
		d.blits++
	} else {
		d.uploads++
	}
	return nil
}

// encode writes the frame pixels and records the blit pass when the
// presentation preserves. It reports whether the blit was recorded.
func (d *Device) encode(encoder *wgpu.CommandEncoder, target *surfaceTarget, p frame.Presentation) (bool, error) {
	preserving := p.Offscreen != nil && d.blit != nil &&
		p.Offscreen.Width() == p.Drawable.Width() && p.Offscreen.Height() == p.Drawable.Height()
	if !preserving {
		target.releaseOffscreen()
		return false, upload(d.queue, target.drawable, p.Drawable)
	}
	if err := target.ensureOffscreen(d.device, d.blit); err != nil {
		return false, err
	}
	if err := upload(d.queue, target.offscreen, p.Offscreen); err != nil {
		return false, err
	}
	if err := d.blit.record(encoder, target.drawableView, target.offscreenBind); err != nil {
		return false, err
	}
	return true, nil
}

// target returns the device textures for surface, recreating them when
// the drawable size changed.
func (d *Device) target(surface any, w, h uint32) (*surfaceTarget, error) {
	if t, ok := d.surfaces[surface]; ok {
		if t.width == w && t.height == h {
			return t, nil
		}
		d.waitIdle()
		t.release()
		delete(d.surfaces, surface)
	}
	t, err := newSurfaceTarget(d.device, w, h)
	if err != nil {
		return nil, err
	}
	d.surfaces[surface] = t
	return t, nil
}

// ReleaseSurface frees the device textures held for surface.
func (d *Device) ReleaseSurface(surface any) {
	t, ok := d.surfaces[surface]
	if !ok {
		return
	}
	d.waitIdle()
	t.release()
	delete(d.surfaces, surface)
}

func (d *Device) waitIdle() {
	if err := d.device.WaitIdle(); err != nil {
		logging.Logger().Warn("gpu: wait idle failed", "err", err)
	}
}

// reclaim releases command buffers whose submissions completed.
func (d *Device) reclaim() {
	if len(d.pending) == 0 {
		return
	}
	done := d.queue.Poll()
	n := 0
	for _, p := range d.pending {
		if p.index <= done {
			p.cmd.Release()
			continue
		}
		d.pending[n] = p
		n++
	}
	clear(d.pending[n:])
	d.pending = d.pending[:n]
}

// Release waits for outstanding work and frees the device. It is safe
// to call more than once.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true

	d.waitIdle()
	for _, p := range d.pending {
		p.cmd.Release()
	}
	d.pending = nil
	for surface, t := range d.surfaces {
		t.release()
		delete(d.surfaces, surface)
	}
	if d.blit != nil {
		d.blit.release()
		d.blit = nil
	}
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

var (
	_ gpucontext.DeviceProvider = (*Device)(nil)
	_ frame.Submitter           = (*Device)(nil)
	_ frame.SurfaceReleaser     = (*Device)(nil)
)
