package stake

import (
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

const (
	defaultWarmupCooldownRate = 0.25
	newWarmupCooldownRate     = 0.09
)

// Resolver computes stake activation from the stake history sysvar.
type Resolver struct {
	// newRateActivationEpoch is the first epoch using the reduced warmup/cooldown rate, nil keeps the default rate.
	newRateActivationEpoch *uint64
}

func NewResolver(newRateActivationEpoch *uint64) *Resolver {
	return &Resolver{newRateActivationEpoch: newRateActivationEpoch}
}

// Resolve returns how much of position was effective, activating and deactivating at targetEpoch.
func (r *Resolver) Resolve(
	position *types.StakePosition, history types.StakeHistory, targetEpoch uint64,
) (*types.StakeActivationStatus, error) {
	if position.Delegation == nil {
		return nil, types.ErrNotDelegated
	}
	if position.Meta == nil {
		return nil, types.ErrMissingReserveData
	}

	status := r.activatingAndDeactivating(position.Delegation, history, targetEpoch)
	status.State = activationState(status)
	status.Inactive = saturatingSub(
		saturatingSub(position.Lamports, status.Effective),
		position.Meta.RentExemptReserve,
	)

	return status, nil
}

func activationState(status *types.StakeActivationStatus) types.StakeActivationState {
	switch {
	case status.Deactivating > 0:
		return types.StakeDeactivating
	case status.Activating > 0:
		return types.StakeActivating
	case status.Effective > 0:
		return types.StakeActive
	default:
		return types.StakeInactive
	}
}

func (r *Resolver) warmupCooldownRate(epoch uint64) float64 {
	if r.newRateActivationEpoch != nil && epoch >= *r.newRateActivationEpoch {
		return newWarmupCooldownRate
	}
	return defaultWarmupCooldownRate
}

func (r *Resolver) activatingAndDeactivating(
	delegation *types.Delegation, history types.StakeHistory, targetEpoch uint64,
) *types.StakeActivationStatus {
	effective, activating := r.effectiveAndActivating(delegation, history, targetEpoch)

	switch {
	case targetEpoch < delegation.DeactivationEpoch:
		return &types.StakeActivationStatus{Effective: effective, Activating: activating}
	case targetEpoch == delegation.DeactivationEpoch:
		// only what is already effective can start cooling down
		return &types.StakeActivationStatus{Effective: effective, Deactivating: effective}
	}

	prevCluster, ok := history.Get(delegation.DeactivationEpoch)
	if !ok {
		// dropped out of history, the stake is long gone
		return &types.StakeActivationStatus{}
	}

	prevEpoch := delegation.DeactivationEpoch
	current := effective
	for {
		currentEpoch := prevEpoch + 1
		if prevCluster.Deactivating == 0 {
			break
		}

		weight := float64(current) / float64(prevCluster.Deactivating)
		newlyNotEffectiveCluster := float64(prevCluster.Effective) * r.warmupCooldownRate(currentEpoch)
		newlyNotEffective := max(uint64(weight*newlyNotEffectiveCluster), 1)

		current = saturatingSub(current, newlyNotEffective)
		if current == 0 || currentEpoch >= targetEpoch {
			break
		}

		entry, ok := history.Get(currentEpoch)
		if !ok {
			break
		}
		prevEpoch, prevCluster = currentEpoch, entry
	}

	return &types.StakeActivationStatus{Effective: current, Deactivating: current}
}

func (r *Resolver) effectiveAndActivating(
	delegation *types.Delegation, history types.StakeHistory, targetEpoch uint64,
) (uint64, uint64) {
	delegated := delegation.Stake

	switch {
	case delegation.IsBootstrap():
		return delegated, 0
	case delegation.ActivationEpoch == delegation.DeactivationEpoch:
		// activated and deactivated in the same epoch, never effective
		return 0, 0
	case targetEpoch == delegation.ActivationEpoch:
		return 0, delegated
	case targetEpoch < delegation.ActivationEpoch:
		return 0, 0
	}

	prevCluster, ok := history.Get(delegation.ActivationEpoch)
	if !ok {
		// no history for the activation epoch, assume fully warmed up
		return delegated, 0
	}

	prevEpoch := delegation.ActivationEpoch
	var current uint64
	for {
		currentEpoch := prevEpoch + 1
		if prevCluster.Activating == 0 {
			break
		}

		remaining := delegated - current
		weight := float64(remaining) / float64(prevCluster.Activating)
		newlyEffectiveCluster := float64(prevCluster.Effective) * r.warmupCooldownRate(currentEpoch)
		newlyEffective := max(uint64(weight*newlyEffectiveCluster), 1)

		current += newlyEffective
		if current >= delegated {
			current = delegated
			break
		}
		if currentEpoch >= targetEpoch || currentEpoch >= delegation.DeactivationEpoch {
			break
		}

		entry, ok := history.Get(currentEpoch)
		if !ok {
			break
		}
		prevEpoch, prevCluster = currentEpoch, entry
	}

	return current, delegated - current
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
