package file_splitter_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter/file_splitter"
	. "github.com/veedubyou/stem-splitter/src/shared/testing"
	"github.com/veedubyou/stem-splitter/src/shared/testing/dummy"
)

var _ = Describe("LocalFileSplitter", func() {
	var (
		ctx           context.Context
		workingDir    string
		outputDir     string
		originalPath  string
		dummyExecutor *dummy.SpleeterExecutor
		localSplitter file_splitter.LocalFileSplitter
	)

	BeforeEach(func() {
		ctx = context.Background()

		root := MakeTempDir()
		workingDir = filepath.Join(root, "wd")
		outputDir = filepath.Join(root, "outputs", "job")
		originalPath = filepath.Join(root, "uploads", "job", "song.mp3")

		Expect(os.MkdirAll(filepath.Dir(originalPath), os.ModePerm)).To(Succeed())
		Expect(os.MkdirAll(outputDir, os.ModePerm)).To(Succeed())
		Expect(os.WriteFile(originalPath, []byte("cool_jamz"), 0o644)).To(Succeed())

		dummyExecutor = dummy.NewDummySpleeterExecutor()
		localSplitter = ExpectSuccess(file_splitter.NewLocalFileSplitter(workingDir, "/somewhere/spleeter", dummyExecutor))
	})

	It("creates the working dir", func() {
		Expect(workingDir).To(BeADirectory())
	})

	Describe("2stems", func() {
		var stems splitter.StemFilePaths

		BeforeEach(func() {
			stems = ExpectSuccess(localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.TwoStems))
		})

		It("invokes spleeter with the stem mode and output layout", func() {
			Expect(dummyExecutor.CallCount()).To(Equal(1))
			Expect(dummyExecutor.ArgsForCall(0)).To(Equal([]string{
				"/somewhere/spleeter",
				"separate",
				"-p", "spleeter:2stems",
				"-o", outputDir,
				"-c", "mp3",
				"-b", "320k",
				"-f", "{instrument}/{filename}.{codec}",
				originalPath,
			}))
			Expect(dummyExecutor.DirForCall(0)).To(Equal(workingDir))
		})

		It("returns a file per stem", func() {
			Expect(stems).To(Equal(splitter.StemFilePaths{
				"vocals":        filepath.Join(outputDir, "vocals", "song.mp3"),
				"accompaniment": filepath.Join(outputDir, "accompaniment", "song.mp3"),
			}))

			Expect(os.ReadFile(stems["vocals"])).To(Equal([]byte("cool_jamz-vocals")))
		})
	})

	It("produces four stems", func() {
		stems := ExpectSuccess(localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.FourStems))
		Expect(stems).To(HaveLen(4))
		Expect(stems).To(HaveKey("drums"))
	})

	It("produces five stems", func() {
		stems := ExpectSuccess(localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.FiveStems))
		Expect(stems).To(HaveLen(5))
		Expect(stems).To(HaveKey("piano"))
	})

	It("rejects an unknown stem mode without running spleeter", func() {
		_, err := localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.StemMode("3stems"))
		Expect(err).To(HaveOccurred())
		Expect(dummyExecutor.CallCount()).To(BeZero())
	})

	It("surfaces spleeter's output when it fails", func() {
		dummyExecutor.Fail = true

		_, err := localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.TwoStems)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, dummy.ModelFailure)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("model exploded"))
	})

	It("fails when spleeter leaves no stems behind", func() {
		dummyExecutor.NoOutput = true

		_, err := localSplitter.SplitFile(ctx, originalPath, outputDir, jobentity.TwoStems)
		Expect(err).To(HaveOccurred())
	})

	It("does not start when the context is already done", func() {
		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := localSplitter.SplitFile(cancelledCtx, originalPath, outputDir, jobentity.TwoStems)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(dummyExecutor.CallCount()).To(BeZero())
	})

	It("stops spleeter when the deadline passes", func() {
		dummyExecutor.Gate = make(chan struct{})
		defer close(dummyExecutor.Gate)

		timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := localSplitter.SplitFile(timeoutCtx, originalPath, outputDir, jobentity.TwoStems)
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})
})
