package ledger

import (
	"context"

	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	dynamolib "github.com/veedubyou/stem-splitter/src/shared/lib/dynamo"
)

// NewFromConfig returns a NopLedger when no ledger is configured
func NewFromConfig(ctx context.Context, dynamoConfig config.Dynamo) (Ledger, error) {
	if dynamoConfig == nil {
		return NopLedger{}, nil
	}

	db := dynamolib.NewFromConfig(dynamoConfig)
	dynamoLedger := NewDynamoLedger(db, dynamoConfig.GetTableName())

	if err := dynamoLedger.EnsureTable(ctx); err != nil {
		return nil, cerr.Wrap(err).Error("Failed to prepare the job ledger")
	}

	return dynamoLedger, nil
}
