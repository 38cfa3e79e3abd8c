// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"fmt"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/sample"
)

// Control side helpers. They do the slow work (decoding, attaching,
// building processors and effects) on the caller's goroutine, check
// everything the posted change depends on, and post only the swap.

// LoadSample decodes path into the sample manager.
func (e *Engine) LoadSample(ctx context.Context, path string) (sample.ID, error) {
	id, err := e.samples.Load(ctx, path)
	if err != nil {
		return id, fmt.Errorf("load sample %v: %w", path, err)
	}
	return id, nil
}

// AddZone attaches the samples of z, builds the processors its chain needs
// and queues it into the part on channel. z must not belong to a group yet.
func (e *Engine) AddZone(ctx context.Context, channel int, z *engine.Zone) error {
	if channel < 0 || channel >= engine.NumParts {
		return fmt.Errorf("%w: part %d", engine.ErrIndex, channel)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.zones[z.ID]; ok {
		return fmt.Errorf("%w: zone %v", ErrZoneExists, z.ID)
	}
	if z.Parent() != nil {
		return fmt.Errorf("%w: zone %v", engine.ErrHasParent, z.ID)
	}
	if err := z.Validate(); err != nil {
		return fmt.Errorf("zone %v: %w", z.DisplayName(), err)
	}
	if err := z.AttachAll(e.samples); err != nil {
		logger.Wf(ctx, "zone %v attach failed, err %v", z.DisplayName(), err)
		z.DetachAll()
		return err
	}
	warm, err := e.pool.Prepare(z)
	if err != nil {
		logger.Wf(ctx, "zone %v processors failed, err %v", z.DisplayName(), err)
		z.DetachAll()
		return fmt.Errorf("zone %v: %w", z.DisplayName(), err)
	}

	g := e.groups[channel]
	newGroup := g == nil
	if newGroup {
		g = engine.NewGroup()
	}

	err = e.Post(func(e *Engine) {
		if newGroup {
			if _, err := e.part(channel).AddGroup(g); err != nil {
				e.failures.Add(1)
				return
			}
		}
		if _, err := g.AddZone(z); err != nil {
			e.failures.Add(1)
			return
		}
		e.pool.Install(warm)
	})
	if err != nil {
		e.pool.Forget(warm)
		z.DetachAll()
		return err
	}
	e.groups[channel] = g
	e.zones[z.ID] = channel
	logger.Tf(ctx, "zone %v queued for part %v, samples=%v, processors=%v",
		z.DisplayName(), channel, z.Samples[0].SampleID, warm.Len())
	return nil
}

// RemoveZone queues removal of the zone with id. Its voices stop at once and
// its sample references are dropped.
func (e *Engine) RemoveZone(ctx context.Context, id engine.ZoneID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.zones[id]; !ok {
		return fmt.Errorf("%w: %v", ErrZoneNotFound, id)
	}
	err := e.Post(func(e *Engine) {
		if err := e.removeZone(id); err != nil {
			e.failures.Add(1)
		}
	})
	if err != nil {
		return err
	}
	delete(e.zones, id)
	logger.Tf(ctx, "zone %v removal queued", id)
	return nil
}

func (e *Engine) removeZone(id engine.ZoneID) error {
	z, ok := e.patch.FindZone(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrZoneNotFound, id)
	}
	e.pool.ReleaseZone(z)
	g := z.Parent()
	for i, gz := range g.Zones() {
		if gz != z {
			continue
		}
		if _, err := g.RemoveZone(i); err != nil {
			return err
		}
		z.DetachAll()
		return nil
	}
	return fmt.Errorf("%w: %v", ErrZoneNotFound, id)
}

// SetPartEffect builds a part effect of kind and queues it into slot of a
// channel's part.
func (e *Engine) SetPartEffect(ctx context.Context, channel, slot int, kind engine.PartEffectKind) error {
	if channel < 0 || channel >= engine.NumParts {
		return fmt.Errorf("%w: part %d", engine.ErrIndex, channel)
	}
	if slot < 0 || slot >= engine.MaxPartEffects {
		return fmt.Errorf("%w: effect slot %d", engine.ErrIndex, slot)
	}
	p := e.part(channel)
	fx, err := engine.CreatePartEffect(kind, e.services, &p.EffectStorage[slot])
	if err != nil {
		return err
	}
	err = e.Post(func(e *Engine) {
		if err := p.InstallEffect(slot, kind, fx); err != nil {
			e.failures.Add(1)
		}
	})
	if err != nil {
		return err
	}
	logger.Tf(ctx, "part %v effect %v set to %v", channel, slot, kind)
	return nil
}

// SetPartEffectParam queues a parameter change of a part effect.
func (e *Engine) SetPartEffectParam(channel, slot, param int, value float32) error {
	if channel < 0 || channel >= engine.NumParts || slot < 0 || slot >= engine.MaxPartEffects ||
		param < 0 || param >= engine.MaxPartEffectParams {
		return fmt.Errorf("%w: part %d slot %d param %d", engine.ErrIndex, channel, slot, param)
	}
	return e.Post(func(e *Engine) {
		e.part(channel).EffectStorage[slot].Params[param] = value
	})
}
