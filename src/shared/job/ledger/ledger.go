package ledger

import (
	"context"
	"path/filepath"
	"time"

	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	dynamolib "github.com/veedubyou/stem-splitter/src/shared/lib/dynamo"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Ledger keeps a record of submissions and their outcomes outside the job
// filesystem. Failing to record never affects the job itself.
//
//counterfeiter:generate . Ledger
type Ledger interface {
	RecordSubmission(ctx context.Context, job jobentity.Job) error
	RecordOutcome(ctx context.Context, jobID string, status jobentity.Status, errorDetails string) error
}

var _ Ledger = NopLedger{}

type NopLedger struct{}

func (NopLedger) RecordSubmission(context.Context, jobentity.Job) error {
	return nil
}

func (NopLedger) RecordOutcome(context.Context, string, jobentity.Status, string) error {
	return nil
}

const (
	idKey           = "job_id"
	fileNameKey     = "file_name"
	stemsKey        = "stems"
	statusKey       = "status"
	errorDetailsKey = "error_details"
	submittedAtKey  = "submitted_at"
	updatedAtKey    = "updated_at"
)

type jobRow struct {
	ID string `dynamo:"job_id,hash"`
}

var _ Ledger = DynamoLedger{}

type DynamoLedger struct {
	db        dynamolib.DynamoDBWrapper
	tableName string
	now       func() time.Time
}

func NewDynamoLedger(db dynamolib.DynamoDBWrapper, tableName string) DynamoLedger {
	return DynamoLedger{
		db:        db,
		tableName: tableName,
		now:       time.Now,
	}
}

// EnsureTable creates the ledger table if it doesn't exist yet
func (d DynamoLedger) EnsureTable(ctx context.Context) error {
	tableNames, err := d.db.ListTables().AllWithContext(ctx)
	if err != nil {
		return cerr.Wrap(err).Error("Failed to list tables")
	}

	for _, name := range tableNames {
		if name == d.tableName {
			return nil
		}
	}

	err = d.db.CreateTable(d.tableName, jobRow{}).
		OnDemand(true).
		RunWithContext(ctx)
	if err != nil {
		return cerr.Field("table_name", d.tableName).
			Wrap(err).Error("Failed to create ledger table")
	}

	return nil
}

func (d DynamoLedger) RecordSubmission(ctx context.Context, job jobentity.Job) error {
	now := d.now().UTC().Format(time.RFC3339)

	err := d.db.Table(d.tableName).Put(map[string]any{
		idKey:          job.ID,
		fileNameKey:    filepath.Base(job.InputPath),
		stemsKey:       string(job.StemMode),
		statusKey:      string(jobentity.ProcessingStatus),
		submittedAtKey: now,
		updatedAtKey:   now,
	}).RunWithContext(ctx)

	if err != nil {
		return cerr.Field("job_id", job.ID).
			Wrap(err).Error("Failed to record job submission")
	}

	return nil
}

func (d DynamoLedger) RecordOutcome(ctx context.Context, jobID string, status jobentity.Status, errorDetails string) error {
	err := d.db.Table(d.tableName).
		Update(idKey, jobID).
		SetFields(map[string]any{
			statusKey:       string(status),
			errorDetailsKey: errorDetails,
			updatedAtKey:    d.now().UTC().Format(time.RFC3339),
		}).
		RunWithContext(ctx)

	if err != nil {
		return cerr.Fields(cerr.F{"job_id": jobID, "status": status}).
			Wrap(err).Error("Failed to record job outcome")
	}

	return nil
}
