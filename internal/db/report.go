package db

import (
	"context"
	"errors"

	"github.com/pyefi/excess-rewards-keeper/internal/db/model"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveReport(ctx context.Context, report *types.ExcessRewardReport) error {
	doc := model.NewReportDocument(settlementKey(report.Bond, report.Epoch), report)

	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	_, err := db.collection(model.ReportCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *Database) GetReport(ctx context.Context, bond types.PublicKey, epoch uint64) (*model.ReportDocument, error) {
	key := settlementKey(bond, epoch)

	var doc model.ReportDocument
	err := db.collection(model.ReportCollection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: "excess reward report not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}
