package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mr-tron/base58"
	"github.com/pyefi/excess-rewards-keeper/internal/clients/solanaclient"
	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

var errNotConfirmed = errors.New("transaction not confirmed yet")

// RPCClient is what the settler needs to submit and track a transaction.
type RPCClient interface {
	GetLatestBlockhash(ctx context.Context) (types.PublicKey, error)
	SendTransaction(ctx context.Context, rawTx []byte) (string, error)
	GetSignatureStatus(ctx context.Context, signature string) (*solanaclient.SignatureStatus, error)
}

// Settler submits the transfer and delegate tips instructions of one settlement as a single transaction.
type Settler struct {
	client    RPCClient
	payer     *Keypair
	programID types.PublicKey
	cfg       *config.SettlementConfig
	// newKeypair creates the transient stake account when the bond has none.
	newKeypair func() (*Keypair, error)
}

func NewSettler(client RPCClient, payer *Keypair, cfg *config.SettlementConfig) *Settler {
	return &Settler{
		client:     client,
		payer:      payer,
		programID:  cfg.ProgramPublicKey(),
		cfg:        cfg,
		newKeypair: NewKeypair,
	}
}

func (s *Settler) Payer() types.PublicKey {
	return s.payer.PublicKey()
}

// Settle transfers lamports from the payer into the bond's stake account and delegates them,
// returning the transaction signature once the cluster confirmed it.
func (s *Settler) Settle(ctx context.Context, bond *types.Bond, lamports uint64) (string, error) {
	if lamports == 0 {
		return "", errors.New("no excess rewards to transfer")
	}

	tx, err := s.BuildTransaction(ctx, bond, lamports)
	if err != nil {
		return "", err
	}
	signature := base58.Encode(tx.Signatures[0])

	log.Ctx(ctx).Info().
		Stringer("bond", bond.Pubkey).
		Stringer("payer", s.payer.PublicKey()).
		Uint64("lamports", lamports).
		Str("signature", signature).
		Msg("submitting settlement transaction")

	sent, err := s.client.SendTransaction(ctx, tx.Serialize())
	if err != nil {
		return "", fmt.Errorf("failed to send settlement transaction: %w", err)
	}
	if sent != signature {
		log.Ctx(ctx).Warn().Str("expected", signature).Str("returned", sent).Msg("node returned a different signature")
	}

	if err := s.waitForConfirmation(ctx, signature); err != nil {
		return "", err
	}
	return signature, nil
}

// BuildTransaction assembles and signs the settlement transaction against the latest finalized blockhash.
func (s *Settler) BuildTransaction(ctx context.Context, bond *types.Bond, lamports uint64) (*Transaction, error) {
	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest blockhash: %w", err)
	}

	signers := []*Keypair{s.payer}
	transient := bond.TransientStakeAccount
	transientIsSigner := false
	if !bond.HasTransientStakeAccount() {
		transientKeypair, err := s.newKeypair()
		if err != nil {
			return nil, err
		}
		transient = transientKeypair.PublicKey()
		transientIsSigner = true
		signers = append(signers, transientKeypair)
	}

	delegate, err := DelegateTips(s.programID, bond, transient, transientIsSigner)
	if err != nil {
		return nil, fmt.Errorf("failed to build delegate tips instruction: %w", err)
	}
	instructions := []Instruction{
		SystemTransfer(s.payer.PublicKey(), bond.StakeAccount, lamports),
		delegate,
	}

	msg, err := CompileMessage(s.payer.PublicKey(), instructions, blockhash)
	if err != nil {
		return nil, err
	}
	return SignTransaction(msg, signers...)
}

func (s *Settler) waitForConfirmation(ctx context.Context, signature string) error {
	attempts := uint(s.cfg.ConfirmationTimeout/s.cfg.ConfirmationPollInterval) + 1

	_, err := retry.DoWithData(func() (*solanaclient.SignatureStatus, error) {
		status, err := s.client.GetSignatureStatus(ctx, signature)
		if err != nil {
			return nil, err
		}
		if status != nil && status.Failed() {
			return nil, retry.Unrecoverable(fmt.Errorf("settlement transaction %s failed: %s", signature, status.Err))
		}
		if status == nil || !status.IsConfirmed() {
			return nil, errNotConfirmed
		}
		return status, nil
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.cfg.ConfirmationPollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Str("signature", signature).
				Err(err).
				Msg("waiting for settlement confirmation")
		}))
	if errors.Is(err, errNotConfirmed) {
		return fmt.Errorf("settlement transaction %s not confirmed within %s", signature,
			s.cfg.ConfirmationTimeout.Round(time.Second))
	}
	return err
}
