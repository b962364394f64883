package envvar

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ENVIRONMENT = "ENVIRONMENT"
	PORT        = "PORT"

	UPLOAD_DIR           = "UPLOAD_DIR"
	OUTPUT_DIR           = "OUTPUT_DIR"
	SPLEETER_BIN_PATH    = "SPLEETER_BIN_PATH"
	SPLEETER_WORKING_DIR = "SPLEETER_WORKING_DIR"
	SEPARATION_TIMEOUT   = "SEPARATION_TIMEOUT"
	MAX_CONCURRENT_JOBS  = "MAX_CONCURRENT_JOBS"
	MAX_UPLOAD_BYTES     = "MAX_UPLOAD_BYTES"
	ALLOWED_FE_ORIGINS   = "ALLOWED_FE_ORIGINS"

	REMOTE_STORAGE_ENABLED           = "REMOTE_STORAGE_ENABLED"
	REMOTE_STORAGE_BACKEND           = "REMOTE_STORAGE_BACKEND"
	GOOGLE_CLOUD_KEY                 = "GOOGLE_CLOUD_KEY"
	GOOGLE_CLOUD_STORAGE_BUCKET_NAME = "GOOGLE_CLOUD_STORAGE_BUCKET_NAME"
	S3_BUCKET_NAME                   = "S3_BUCKET_NAME"
	S3_ENDPOINT                      = "S3_ENDPOINT"
	AWS_REGION                       = "AWS_REGION"
	AWS_ACCESS_KEY_ID                = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY            = "AWS_SECRET_ACCESS_KEY"

	DISPATCH_MODE       = "DISPATCH_MODE"
	RABBITMQ_URL        = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME = "RABBITMQ_QUEUE_NAME"

	JOB_LEDGER_ENABLED = "JOB_LEDGER_ENABLED"
	JOB_LEDGER_TABLE   = "JOB_LEDGER_TABLE"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

func GetOr(key string, fallback string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return fallback
	}

	return val
}

func GetBool(key string) bool {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return false
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not a boolean: %s", key, val))
	}

	return parsed
}

func GetIntOr(key string, fallback int64) int64 {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return fallback
	}

	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not an integer: %s", key, val))
	}

	return parsed
}

// GetDurationOr parses values like "15m" or "90s". An unset variable yields fallback.
func GetDurationOr(key string, fallback time.Duration) time.Duration {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		panic(fmt.Sprintf("Env variable %s is not a duration: %s", key, val))
	}

	return parsed
}
