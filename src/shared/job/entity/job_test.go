package jobentity_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
)

var _ = Describe("Job", func() {
	Describe("Status", func() {
		DescribeTable("transitions",
			func(from jobentity.Status, to jobentity.Status, allowed bool) {
				Expect(from.CanTransitionTo(to)).To(Equal(allowed))
			},
			Entry("none to processing", jobentity.NoStatus, jobentity.ProcessingStatus, true),
			Entry("processing to completed", jobentity.ProcessingStatus, jobentity.CompletedStatus, true),
			Entry("processing to error", jobentity.ProcessingStatus, jobentity.ErrorStatus, true),
			Entry("processing to processing", jobentity.ProcessingStatus, jobentity.ProcessingStatus, false),
			Entry("completed to error", jobentity.CompletedStatus, jobentity.ErrorStatus, false),
			Entry("error to completed", jobentity.ErrorStatus, jobentity.CompletedStatus, false),
			Entry("completed to processing", jobentity.CompletedStatus, jobentity.ProcessingStatus, false),
			Entry("anything to none", jobentity.ProcessingStatus, jobentity.NoStatus, false),
		)

		It("parses marker contents", func() {
			Expect(jobentity.ParseStatus("completed\n")).To(Equal(jobentity.CompletedStatus))
			Expect(jobentity.ParseStatus("error")).To(Equal(jobentity.ErrorStatus))
			Expect(jobentity.ParseStatus("processing")).To(Equal(jobentity.ProcessingStatus))
			Expect(jobentity.ParseStatus("compl")).To(Equal(jobentity.ProcessingStatus))
			Expect(jobentity.ParseStatus("")).To(Equal(jobentity.ProcessingStatus))
		})
	})

	Describe("StemMode", func() {
		It("defaults to two stems", func() {
			mode, ok := jobentity.ParseStemMode("")
			Expect(ok).To(BeTrue())
			Expect(mode).To(Equal(jobentity.TwoStems))
		})

		It("rejects unknown modes", func() {
			_, ok := jobentity.ParseStemMode("3stems")
			Expect(ok).To(BeFalse())
		})

		It("names the stems for each mode", func() {
			Expect(jobentity.TwoStems.StemNames()).To(Equal([]string{"vocals", "accompaniment"}))
			Expect(jobentity.FourStems.StemNames()).To(ConsistOf("vocals", "drums", "bass", "other"))
			Expect(jobentity.FiveStems.StemNames()).To(ContainElement("piano"))
		})
	})

	DescribeTable("IsAllowedFile",
		func(filename string, allowed bool) {
			Expect(jobentity.IsAllowedFile(filename)).To(Equal(allowed))
		},
		Entry("mp3", "song.mp3", true),
		Entry("upper case extension", "SONG.FLAC", true),
		Entry("m4a", "voice.m4a", true),
		Entry("text file", "notes.txt", false),
		Entry("no extension", "song", false),
		Entry("extension only in the middle", "song.mp3.exe", false),
	)

	Describe("Job IDs", func() {
		It("generates distinct valid ids", func() {
			first := jobentity.NewJobID()
			second := jobentity.NewJobID()
			Expect(first).NotTo(Equal(second))
			Expect(jobentity.IsValidJobID(first)).To(BeTrue())
		})

		It("rejects anything that is not a canonical uuid", func() {
			id := jobentity.NewJobID()
			Expect(jobentity.IsValidJobID("../etc")).To(BeFalse())
			Expect(jobentity.IsValidJobID("")).To(BeFalse())
			Expect(jobentity.IsValidJobID("{" + id + "}")).To(BeFalse())
			Expect(jobentity.IsValidJobID(strings.ToUpper(id))).To(BeFalse())
		})
	})
})
