package cerr_test

import (
	"fmt"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
)

var _ = Describe("Cerr", func() {
	var rootErr error

	BeforeEach(func() {
		rootErr = errors.New("disk on fire")
	})

	It("keeps the cause chain", func() {
		err := cerr.Field("job_id", "abc").Wrap(rootErr).Error("Failed to split")
		Expect(errors.Is(err, rootErr)).To(BeTrue())
		Expect(err.Error()).To(Equal("Failed to split: disk on fire"))
	})

	It("collects fields from every layer", func() {
		inner := cerr.Field("job_id", "abc").Wrap(rootErr).Error("Failed to split")
		outer := cerr.Fields(cerr.F{"stems": "2stems", "job_id": "outer"}).Wrap(inner).Error("Job failed")

		Expect(cerr.CollectFields(outer)).To(Equal(cerr.F{
			"job_id": "outer",
			"stems":  "2stems",
		}))
	})

	It("does not share fields between derived contexts", func() {
		base := cerr.Field("a", 1)
		_ = base.Field("b", 2)

		Expect(cerr.CollectFields(base.Error("boom"))).To(Equal(cerr.F{"a": 1}))
	})

	It("creates a fresh error when wrapping nil", func() {
		err := cerr.Wrap(nil).Error("Missing value")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(Equal("Missing value"))
	})

	It("prints the fields in verbose output", func() {
		err := cerr.Field("job_id", "abc").Error("boom")
		Expect(fmt.Sprintf("%+v", err)).To(ContainSubstring("job_id"))
	})
})
