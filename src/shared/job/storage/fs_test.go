package jobstorage_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors/markers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/storage"
	. "github.com/veedubyou/stem-splitter/src/shared/testing"
)

var _ = Describe("FileStore", func() {
	var (
		ctx        context.Context
		uploadRoot string
		outputRoot string
		store      jobstorage.FileStore
		jobID      string
	)

	BeforeEach(func() {
		ctx = context.Background()
		root := MakeTempDir()
		uploadRoot = filepath.Join(root, "uploads")
		outputRoot = filepath.Join(root, "outputs")
		store = ExpectSuccess(jobstorage.NewFileStore(uploadRoot, outputRoot))
		jobID = jobentity.NewJobID()
	})

	Describe("CreateJob", func() {
		var job jobentity.Job

		BeforeEach(func() {
			job = ExpectSuccess(store.CreateJob(ctx, jobID, "song.mp3", []byte("audio"), jobentity.TwoStems))
		})

		It("writes the upload under the job's input directory", func() {
			Expect(job.InputPath).To(Equal(filepath.Join(uploadRoot, jobID, "song.mp3")))
			Expect(os.ReadFile(job.InputPath)).To(Equal([]byte("audio")))
		})

		It("creates the output directory", func() {
			info := ExpectSuccess(os.Stat(job.OutputDir))
			Expect(info.IsDir()).To(BeTrue())
		})

		It("strips directories from the uploaded filename", func() {
			other := ExpectSuccess(store.CreateJob(ctx, jobentity.NewJobID(), "../../evil.mp3", []byte("audio"), jobentity.TwoStems))
			Expect(filepath.Dir(other.InputPath)).To(Equal(filepath.Join(uploadRoot, other.ID)))
			Expect(filepath.Base(other.InputPath)).To(Equal("evil.mp3"))
		})

		It("reports processing before any marker is written", func() {
			report := ExpectSuccess(store.GetReport(ctx, jobID))
			Expect(report.Status).To(Equal(jobentity.ProcessingStatus))
		})

		It("can be loaded back by id", func() {
			loaded := ExpectSuccess(store.LoadJob(ctx, jobID, "song.mp3", jobentity.TwoStems))
			Expect(loaded).To(Equal(job))
		})

		It("can be removed", func() {
			Expect(store.RemoveJob(ctx, jobID)).To(Succeed())

			_, err := store.GetReport(ctx, jobID)
			Expect(markers.Is(err, jobstorage.JobNotFoundMark)).To(BeTrue())
			Expect(filepath.Join(uploadRoot, jobID)).NotTo(BeADirectory())
		})
	})

	Describe("Status markers", func() {
		BeforeEach(func() {
			ExpectSuccess(store.CreateJob(ctx, jobID, "song.mp3", []byte("audio"), jobentity.TwoStems))
		})

		It("only moves forward", func() {
			Expect(store.SetStatus(ctx, jobID, jobentity.ProcessingStatus)).To(Succeed())
			Expect(store.SetStatus(ctx, jobID, jobentity.CompletedStatus)).To(Succeed())

			err := store.SetStatus(ctx, jobID, jobentity.ProcessingStatus)
			Expect(markers.Is(err, jobstorage.InvalidTransitionMark)).To(BeTrue())

			err = store.SetStatus(ctx, jobID, jobentity.ErrorStatus)
			Expect(markers.Is(err, jobstorage.InvalidTransitionMark)).To(BeTrue())
		})

		It("leaves no temp files behind", func() {
			Expect(store.SetStatus(ctx, jobID, jobentity.ProcessingStatus)).To(Succeed())

			entries := ExpectSuccess(os.ReadDir(filepath.Join(outputRoot, jobID)))
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name()).To(Equal(jobstorage.StatusFileName))
		})

		It("treats unrecognized marker contents as processing", func() {
			statusPath := filepath.Join(outputRoot, jobID, jobstorage.StatusFileName)
			Expect(os.WriteFile(statusPath, []byte("halfway"), 0o644)).To(Succeed())

			report := ExpectSuccess(store.GetReport(ctx, jobID))
			Expect(report.Status).To(Equal(jobentity.ProcessingStatus))
		})

		Describe("When the job errored", func() {
			BeforeEach(func() {
				Expect(store.SetStatus(ctx, jobID, jobentity.ProcessingStatus)).To(Succeed())
				Expect(store.SetErrorDetails(ctx, jobID, "spleeter exploded")).To(Succeed())
				Expect(store.SetStatus(ctx, jobID, jobentity.ErrorStatus)).To(Succeed())
			})

			It("returns the error details", func() {
				report := ExpectSuccess(store.GetReport(ctx, jobID))
				Expect(report.Status).To(Equal(jobentity.ErrorStatus))
				Expect(report.ErrorDetails).To(Equal("spleeter exploded"))
				Expect(report.Files).To(BeEmpty())
			})
		})

		Describe("When the job completed", func() {
			BeforeEach(func() {
				outputDir := filepath.Join(outputRoot, jobID)
				for _, rel := range []string{"vocals/song.mp3", "accompaniment/song.mp3", "notes/readme.txt", "song.wav"} {
					path := filepath.Join(outputDir, filepath.FromSlash(rel))
					Expect(os.MkdirAll(filepath.Dir(path), os.ModePerm)).To(Succeed())
					Expect(os.WriteFile(path, []byte("stem"), 0o644)).To(Succeed())
				}

				Expect(store.SetStatus(ctx, jobID, jobentity.ProcessingStatus)).To(Succeed())
				Expect(store.SetStatus(ctx, jobID, jobentity.CompletedStatus)).To(Succeed())
			})

			It("lists audio outputs as sorted relative paths", func() {
				report := ExpectSuccess(store.GetReport(ctx, jobID))
				Expect(report.Status).To(Equal(jobentity.CompletedStatus))
				Expect(report.Files).To(Equal([]string{
					"accompaniment/song.mp3",
					"song.wav",
					"vocals/song.mp3",
				}))
			})

			It("returns the same report every time", func() {
				first := ExpectSuccess(store.GetReport(ctx, jobID))
				second := ExpectSuccess(store.GetReport(ctx, jobID))
				Expect(second).To(Equal(first))
			})
		})
	})

	Describe("GetReport", func() {
		It("fails for unknown jobs", func() {
			_, err := store.GetReport(ctx, jobentity.NewJobID())
			Expect(markers.Is(err, jobstorage.JobNotFoundMark)).To(BeTrue())
		})

		It("fails for malformed ids", func() {
			_, err := store.GetReport(ctx, "../outputs")
			Expect(markers.Is(err, jobstorage.JobNotFoundMark)).To(BeTrue())
		})
	})

	Describe("ArtifactPath", func() {
		BeforeEach(func() {
			ExpectSuccess(store.CreateJob(ctx, jobID, "song.mp3", []byte("audio"), jobentity.TwoStems))

			stemPath := filepath.Join(outputRoot, jobID, "vocals", "song.mp3")
			Expect(os.MkdirAll(filepath.Dir(stemPath), os.ModePerm)).To(Succeed())
			Expect(os.WriteFile(stemPath, []byte("vocals"), 0o644)).To(Succeed())
		})

		It("resolves files inside the output directory", func() {
			path := ExpectSuccess(store.ArtifactPath(ctx, jobID, "vocals/song.mp3"))
			Expect(path).To(Equal(filepath.Join(outputRoot, jobID, "vocals", "song.mp3")))
		})

		DescribeTable("rejects paths that are not artifacts",
			func(relativePath string) {
				_, err := store.ArtifactPath(ctx, jobID, relativePath)
				Expect(markers.Is(err, jobstorage.ArtifactNotFoundMark)).To(BeTrue())
			},
			Entry("parent traversal", "../../uploads/secret.mp3"),
			Entry("nested traversal", "vocals/../../../secret.mp3"),
			Entry("absolute path", "/etc/passwd"),
			Entry("a directory", "vocals"),
			Entry("the job root", "."),
			Entry("empty path", ""),
			Entry("missing file", "drums/song.mp3"),
		)

		It("does not leak files from another job", func() {
			otherID := jobentity.NewJobID()
			ExpectSuccess(store.CreateJob(ctx, otherID, "other.mp3", []byte("audio"), jobentity.TwoStems))
			otherStem := filepath.Join(outputRoot, otherID, "other.mp3")
			Expect(os.WriteFile(otherStem, []byte("x"), 0o644)).To(Succeed())

			_, err := store.ArtifactPath(ctx, jobID, "../"+otherID+"/other.mp3")
			Expect(markers.Is(err, jobstorage.ArtifactNotFoundMark)).To(BeTrue())
		})
	})
})
