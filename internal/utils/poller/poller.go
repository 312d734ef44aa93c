package poller

import (
	"context"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

type EpochInfoSource interface {
	GetEpochInfo(ctx context.Context) (*types.EpochInfo, error)
}

type State int

const (
	StateWaiting State = iota
	StateAdvanced
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// EpochMonitor blocks the control loop until the cluster moves past a given epoch.
type EpochMonitor struct {
	source   EpochInfoSource
	interval time.Duration
	sleep    SleepFunc

	state     State
	waitingOn uint64
}

func NewEpochMonitor(source EpochInfoSource, interval time.Duration) *EpochMonitor {
	return &EpochMonitor{
		source:   source,
		interval: interval,
		sleep:    sleepContext,
		state:    StateAdvanced,
	}
}

// WithSleep replaces the sleep between polls.
func (m *EpochMonitor) WithSleep(sleep SleepFunc) *EpochMonitor {
	m.sleep = sleep
	return m
}

func (m *EpochMonitor) State() State {
	return m.state
}

// WaitForNextEpoch polls right away and then once per interval until the reported epoch is
// strictly greater than epoch. Poll errors are logged and the wait goes on.
func (m *EpochMonitor) WaitForNextEpoch(ctx context.Context, epoch uint64) (*types.EpochInfo, error) {
	m.state = StateWaiting
	m.waitingOn = epoch

	log.Ctx(ctx).Info().
		Uint64("epoch", epoch).
		Msgf("Waiting for the next epoch, polling every %s", m.interval)

	for {
		info, err := m.source.GetEpochInfo(ctx)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Ctx(ctx).Error().Err(err).Msg("Error polling epoch info")
		case info.Epoch > m.waitingOn:
			m.state = StateAdvanced
			log.Ctx(ctx).Info().
				Uint64("previous_epoch", m.waitingOn).
				Uint64("epoch", info.Epoch).
				Uint64("slot", info.AbsoluteSlot).
				Msg("Epoch advanced")
			return info, nil
		default:
			log.Ctx(ctx).Debug().
				Uint64("epoch", info.Epoch).
				Uint64("slot_index", info.SlotIndex).
				Uint64("slots_in_epoch", info.SlotsInEpoch).
				Msg("Epoch not advanced yet")
		}

		if err := m.sleep(ctx, m.interval); err != nil {
			return nil, err
		}
	}
}

// Settle waits for delay, giving the cluster time to make the completed epoch's records queryable.
func (m *EpochMonitor) Settle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	log.Ctx(ctx).Debug().Msgf("Waiting %s for epoch data to settle", delay)
	return m.sleep(ctx, delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
