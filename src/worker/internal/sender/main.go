package main

import (
	"context"
	"fmt"
	"os"

	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/message"
	"github.com/veedubyou/stem-splitter/src/shared/lib/rabbitmq"
)

// sends a split job for a job whose files are already on disk, e.g.
// one that was dispatched while no worker was listening
//
//	go run ./src/worker/internal/sender <job_id> <file_name> [stems]
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: sender <job_id> <file_name> [stems]")
		os.Exit(1)
	}

	stemMode := jobentity.DefaultStemMode
	if len(os.Args) > 3 {
		stemMode = jobentity.StemMode(os.Args[3])
	}

	params := jobmessage.SplitJobParams{
		JobID:    os.Args[1],
		FileName: os.Args[2],
		StemMode: stemMode,
	}

	if err := params.Validate(); err != nil {
		panic(err)
	}

	publisher, err := rabbitmq.NewQueuePublisher(
		envvar.MustGet(envvar.RABBITMQ_URL),
		envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
	)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	job := jobentity.Job{
		ID:        params.JobID,
		InputPath: params.FileName,
		StemMode:  params.StemMode,
	}

	msg, err := jobmessage.NewSplitJobMessage(job)
	if err != nil {
		panic(err)
	}

	if err := publisher.Publish(context.Background(), msg); err != nil {
		panic(err)
	}

	fmt.Printf("Sent split job for %s\n", params.JobID)
}
