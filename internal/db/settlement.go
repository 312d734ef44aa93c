package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/db/model"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (db *Database) HasSettlement(ctx context.Context, bond types.PublicKey, epoch uint64) (bool, error) {
	count, err := db.collection(model.SettlementCollection).
		CountDocuments(ctx, bson.M{"_id": settlementKey(bond, epoch)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *Database) RecordSettlement(ctx context.Context, result *types.SettlementResult) error {
	if result.Outcome != types.OutcomeSettled {
		return fmt.Errorf("only settled outcomes are recorded, got %s", result.Outcome)
	}

	key := settlementKey(result.Report.Bond, result.Report.Epoch)
	doc := &model.SettlementDocument{
		ID:          key,
		Bond:        result.Report.Bond.String(),
		VoteAccount: result.Report.VoteAccount.String(),
		Epoch:       result.Report.Epoch,
		Lamports:    result.Report.Total,
		Signature:   result.Signature,
		SettledAt:   time.Now().UTC(),
	}

	_, err := db.collection(model.SettlementCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Key:     key,
				Message: "settlement already recorded for " + key,
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetSettlement(ctx context.Context, bond types.PublicKey, epoch uint64) (*model.SettlementDocument, error) {
	key := settlementKey(bond, epoch)

	var doc model.SettlementDocument
	err := db.collection(model.SettlementCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: "settlement not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}
