package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/clients/mevclient"
	"github.com/pyefi/excess-rewards-keeper/internal/clients/solanaclient"
	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/db"
	dbmodel "github.com/pyefi/excess-rewards-keeper/internal/db/model"
	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/queue"
	"github.com/pyefi/excess-rewards-keeper/internal/services"
	"github.com/pyefi/excess-rewards-keeper/internal/transactions"
	"github.com/rs/zerolog/log"
)

// newService wires the clients, the optional ledger and queue and the settler into a service.
// The returned cleanup releases every connection opened on the way.
func newService(ctx context.Context, cfg *config.Config, confirmer services.Confirmer) (*services.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	solanaClient, err := solanaclient.NewSolanaClient(ctx, &cfg.Solana)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error while creating solana client: %w", err)
	}
	closers = append(closers, solanaClient.Close)

	var solana solanaclient.SolanaInterface = solanaclient.NewSolanaClientWithMetrics(solanaClient)

	var mev mevclient.MevInterface = mevclient.NewMevClientWithMetrics(mevclient.NewClient(&cfg.Mev))

	observers := []services.Observer{metrics.NewReportObserver()}

	var ledger db.DbInterface
	if cfg.Db != nil {
		if err := dbmodel.Setup(ctx, cfg.Db); err != nil {
			return nil, cleanup, fmt.Errorf("error while setting up settlement db model: %w", err)
		}

		database, err := db.New(ctx, *cfg.Db)
		if err != nil {
			return nil, cleanup, fmt.Errorf("error while creating db client: %w", err)
		}
		closers = append(closers, func() {
			if err := database.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to close db client")
			}
		})

		ledger = db.NewDbWithMetrics(database)
		observers = append(observers, services.NewLedgerObserver(ledger))
	} else {
		log.Ctx(ctx).Warn().Msg("no db configured, settlements will not be recorded")
	}

	if cfg.Queue != nil {
		qm, err := queue.NewQueueManager(cfg.Queue)
		if err != nil {
			return nil, cleanup, fmt.Errorf("error while creating queue manager: %w", err)
		}
		closers = append(closers, qm.Shutdown)
		observers = append(observers, qm)
	}

	var settler services.Settler
	if !cfg.Settlement.DryRun {
		if cfg.Settlement.PayerKeypair == "" {
			return nil, cleanup, errors.New("settlement payer-keypair is required unless running with --dry-run")
		}
		payer, err := transactions.LoadKeypair(cfg.Settlement.PayerKeypair)
		if err != nil {
			return nil, cleanup, err
		}
		s := transactions.NewSettler(solana, payer, &cfg.Settlement)
		log.Ctx(ctx).Info().Stringer("payer", s.Payer()).Msg("loaded payer keypair")
		settler = s
	}

	service := services.NewService(cfg, solana, mev, ledger, settler, confirmer, observers...)
	return service, cleanup, nil
}
