package model

import (
	"context"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var collections = map[string][]mongo.IndexModel{
	ReportCollection: {
		{Keys: bson.D{{Key: "vote_account", Value: 1}, {Key: "epoch", Value: -1}}},
	},
	SettlementCollection: {
		{
			Keys:    bson.D{{Key: "bond", Value: 1}, {Key: "epoch", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "vote_account", Value: 1}, {Key: "epoch", Value: -1}}},
	},
}

// Setup creates the collections and indexes. It is safe to run against an initialized database.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect mongo client")
		}
	}()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for name, indexes := range collections {
		if !utils.Contains(existing, name) {
			if err := database.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
		}
		if len(indexes) == 0 {
			continue
		}
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}

	log.Ctx(ctx).Info().Str("db", cfg.DbName).Msg("database setup completed")
	return nil
}

// Collections lists every collection managed by Setup.
func Collections() []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	return names
}
