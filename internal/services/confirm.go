package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// AutoConfirmer pre-authorizes every settlement.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(context.Context, *types.ExcessRewardReport) (bool, error) {
	return true, nil
}

// PromptConfirmer asks the operator on the terminal before each settlement.
type PromptConfirmer struct {
	run func(label string) error
}

func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{run: func(label string) error {
		prompt := promptui.Prompt{
			Label:     label,
			IsConfirm: true,
		}
		_, err := prompt.Run()
		return err
	}}
}

func (c *PromptConfirmer) Confirm(_ context.Context, report *types.ExcessRewardReport) (bool, error) {
	label := fmt.Sprintf("Transfer %d lamports (%s SOL) in excess rewards to bond %s",
		report.Total, types.LamportsToSol(report.Total), report.Bond)

	err := c.run(label)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, fmt.Errorf("%w: prompt interrupted", types.ErrUserDeclined)
	default:
		return false, err
	}
}
