package jobmessage

import (
	"encoding/json"
	"path/filepath"

	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
)

const SplitJobType string = "split_job"

// SplitJobParams is everything a worker process needs to find a job
// that a server created on the shared filesystem
type SplitJobParams struct {
	JobID    string             `json:"job_id"`
	FileName string             `json:"file_name"`
	StemMode jobentity.StemMode `json:"stems"`
}

func NewSplitJobParams(job jobentity.Job) SplitJobParams {
	return SplitJobParams{
		JobID:    job.ID,
		FileName: filepath.Base(job.InputPath),
		StemMode: job.StemMode,
	}
}

func (s SplitJobParams) Validate() error {
	errctx := cerr.Field("job_params", s)

	if !jobentity.IsValidJobID(s.JobID) {
		return errctx.Error("Missing or malformed job ID")
	}

	if s.FileName == "" {
		return errctx.Error("Missing file name")
	}

	if _, ok := jobentity.ParseStemMode(string(s.StemMode)); !ok || s.StemMode == "" {
		return errctx.Error("Unrecognized stem mode")
	}

	return nil
}

func NewSplitJobMessage(job jobentity.Job) (amqp091.Publishing, error) {
	body, err := json.Marshal(NewSplitJobParams(job))
	if err != nil {
		return amqp091.Publishing{}, cerr.Field("job_id", job.ID).
			Wrap(err).Error("Failed to marshal split job message")
	}

	return amqp091.Publishing{
		Type: SplitJobType,
		Body: body,
	}, nil
}

func ParseSplitJobParams(body []byte) (SplitJobParams, error) {
	params := SplitJobParams{}
	if err := json.Unmarshal(body, &params); err != nil {
		return SplitJobParams{}, cerr.Wrap(err).Error("Failed to unmarshal message JSON")
	}

	if err := params.Validate(); err != nil {
		return SplitJobParams{}, cerr.Wrap(err).Error("Split job message is invalid")
	}

	return params, nil
}
