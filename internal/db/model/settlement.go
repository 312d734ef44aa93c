package model

import "time"

const SettlementCollection = "settlement"

// SettlementDocument is a confirmed on-chain settlement. Its id is the bond and epoch pair.
type SettlementDocument struct {
	ID          string    `bson:"_id"`
	Bond        string    `bson:"bond"`
	VoteAccount string    `bson:"vote_account"`
	Epoch       uint64    `bson:"epoch"`
	Lamports    int64     `bson:"lamports"`
	Signature   string    `bson:"signature"`
	SettledAt   time.Time `bson:"settled_at"`
}
