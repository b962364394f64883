package config

import "github.com/veedubyou/stem-splitter/src/shared/config/envvar"

type Dynamo interface {
	GetTableName() string
}

var _ Dynamo = ProdDynamo{}

type ProdDynamo struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	TableName       string
}

func (p ProdDynamo) GetTableName() string {
	return p.TableName
}

var _ Dynamo = LocalDynamo{}

type LocalDynamo struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Host            string
	TableName       string
}

func (l LocalDynamo) GetTableName() string {
	return l.TableName
}

const DefaultLedgerTable = "StemJobs"

// LedgerFromEnv returns nil when the job ledger is not enabled
func LedgerFromEnv() Dynamo {
	if !envvar.GetBool(envvar.JOB_LEDGER_ENABLED) {
		return nil
	}

	return ProdDynamo{
		AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
		SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
		Region:          envvar.MustGet(envvar.AWS_REGION),
		TableName:       envvar.GetOr(envvar.JOB_LEDGER_TABLE, DefaultLedgerTable),
	}
}
