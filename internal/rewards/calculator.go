package rewards

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

type Stream string

const (
	StreamInflation Stream = "inflation"
	StreamMev       Stream = "mev"
	StreamBlock     Stream = "block"
)

func (s Stream) String() string {
	return string(s)
}

// Input is the frozen data of one (bond, epoch) evaluation shared by all calculators.
type Input struct {
	Bond            *types.Bond
	TargetEpoch     uint64
	BondActiveStake uint64
	// Mev is nil when the provider has no record for the validator and epoch.
	Mev   *types.MevSnapshot
	Block *types.BlockRewardSnapshot
	// ValidatorActiveStake is the validator stake read from the ledger, set when Mev carries none.
	ValidatorActiveStake uint64
}

// Calculator computes the lamports a validator owes a bond for one reward stream.
type Calculator interface {
	Stream() Stream
	ExcessReward(ctx context.Context, in *Input) (int64, error)
}

// proportionalShare returns total * stake / validatorStake * bps / MaxBps, each division rounding down.
func proportionalShare(total, stake, validatorStake uint64, bps uint16) (int64, error) {
	if total == 0 || stake == 0 || validatorStake == 0 || bps == 0 {
		return 0, nil
	}

	share := sdkmath.NewIntFromUint64(total).
		Mul(sdkmath.NewIntFromUint64(stake)).
		Quo(sdkmath.NewIntFromUint64(validatorStake))
	owed := share.MulRaw(int64(bps)).QuoRaw(types.MaxBps)
	if !owed.IsInt64() {
		return 0, fmt.Errorf("%w: owed amount %s overflows int64", types.ErrInvariantViolation, owed)
	}
	return owed.Int64(), nil
}

// Total sums the per-stream amounts of a report.
func Total(amounts map[Stream]int64) (int64, error) {
	sum := sdkmath.ZeroInt()
	for _, amount := range amounts {
		sum = sum.AddRaw(amount)
	}
	if !sum.IsInt64() {
		return 0, fmt.Errorf("%w: excess reward sum %s overflows int64", types.ErrInvariantViolation, sum)
	}
	return sum.Int64(), nil
}
