// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accel declares the optional device-offload boundary for the
// fluid solver kernels, per spec.md §6. No GPU backend ships with this
// engine (CUDA/OpenCL bindings are a Non-goal); a CPU-only Accelerator is
// provided so the driver can run without one configured.
package accel

import "github.com/cpmech/daino/internal/amr"

// Token is an opaque handle to a dispatched unit of work; its only
// operation is waiting for completion.
type Token interface {
	Wait() error
}

// Accelerator offloads the per-patch update kernel to a device. A patch's
// two fluid sandglass slots correspond to a host-pinned buffer pair that
// implementations may keep mirrored on-device across steps to avoid
// repeated transfers.
type Accelerator interface {
	// Dispatch submits the update kernel for one patch's interior cells
	// on a device queue and returns immediately with a completion token.
	Dispatch(p *amr.Patch, readSlot, writeSlot int, dt, dh float64) (Token, error)

	// Queues reports how many independent device queues are available
	// for concurrent dispatch.
	Queues() int
}

// completedToken is a Token that is already satisfied; used by CPUAccelerator.
type completedToken struct{}

func (completedToken) Wait() error { return nil }

// CPUAccelerator is the zero-value Accelerator: Dispatch is a no-op that
// reports no queued work, letting the driver fall back entirely to the
// host-side integrator kernels when no device is configured.
type CPUAccelerator struct{}

// Dispatch does nothing and returns an already-completed token; callers
// must still run the host kernel themselves.
func (CPUAccelerator) Dispatch(p *amr.Patch, readSlot, writeSlot int, dt, dh float64) (Token, error) {
	return completedToken{}, nil
}

// Queues reports zero, so driver code that checks Queues()>0 before
// offloading correctly skips device dispatch.
func (CPUAccelerator) Queues() int { return 0 }
