package types

import (
	"math/bits"
	"time"
)

// minimumSlotsPerEpoch is the length of epoch 0 when the schedule has a warmup period.
const minimumSlotsPerEpoch = 32

type EpochInfo struct {
	Epoch        uint64 `json:"epoch"`
	SlotIndex    uint64 `json:"slotIndex"`
	SlotsInEpoch uint64 `json:"slotsInEpoch"`
	AbsoluteSlot uint64 `json:"absoluteSlot"`
	BlockHeight  uint64 `json:"blockHeight"`
}

type EpochSchedule struct {
	SlotsPerEpoch            uint64 `json:"slotsPerEpoch"`
	LeaderScheduleSlotOffset uint64 `json:"leaderScheduleSlotOffset"`
	Warmup                   bool   `json:"warmup"`
	FirstNormalEpoch         uint64 `json:"firstNormalEpoch"`
	FirstNormalSlot          uint64 `json:"firstNormalSlot"`
}

func (s *EpochSchedule) SlotsInEpoch(epoch uint64) uint64 {
	if epoch < s.FirstNormalEpoch {
		return 1 << (epoch + uint64(bits.TrailingZeros64(minimumSlotsPerEpoch)))
	}
	return s.SlotsPerEpoch
}

func (s *EpochSchedule) FirstSlotInEpoch(epoch uint64) uint64 {
	if epoch <= s.FirstNormalEpoch {
		return ((1 << epoch) - 1) * minimumSlotsPerEpoch
	}
	return (epoch-s.FirstNormalEpoch)*s.SlotsPerEpoch + s.FirstNormalSlot
}

func (s *EpochSchedule) LastSlotInEpoch(epoch uint64) uint64 {
	return s.FirstSlotInEpoch(epoch) + s.SlotsInEpoch(epoch) - 1
}

// EpochContext is what the control loop knows about the epoch being reconciled.
type EpochContext struct {
	Current         EpochInfo
	Schedule        EpochSchedule
	TargetEpoch     uint64
	TargetFirstSlot uint64
	TargetLastSlot  uint64
	// TargetEndTime is the block time of the last produced slot of the target epoch, nil when unknown.
	TargetEndTime *time.Time
}

// NewEpochContext targets the epoch preceding current.
func NewEpochContext(current EpochInfo, schedule EpochSchedule) *EpochContext {
	target := current.Epoch - 1
	return &EpochContext{
		Current:         current,
		Schedule:        schedule,
		TargetEpoch:     target,
		TargetFirstSlot: schedule.FirstSlotInEpoch(target),
		TargetLastSlot:  schedule.LastSlotInEpoch(target),
	}
}
