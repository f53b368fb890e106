package semaphore_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/semaphore"
)

var _ = Describe("type Semaphore", func() {
	When("it is the zero value", func() {
		var sem Semaphore

		It("reports no limit", func() {
			Expect(sem.Limit()).To(Equal(0))
		})

		It("never blocks", func() {
			for i := 0; i < 10; i++ {
				Expect(sem.TryAcquire()).To(BeTrue())
				err := sem.Acquire(context.Background())
				Expect(err).ShouldNot(HaveOccurred())
			}
			sem.Release()
		})
	})

	When("it has a limit", func() {
		var sem Semaphore

		BeforeEach(func() {
			sem = New(2)
		})

		It("reports the limit", func() {
			Expect(sem.Limit()).To(Equal(2))
		})

		It("refuses slots beyond the limit", func() {
			Expect(sem.TryAcquire()).To(BeTrue())
			Expect(sem.TryAcquire()).To(BeTrue())
			Expect(sem.TryAcquire()).To(BeFalse())

			sem.Release()
			Expect(sem.TryAcquire()).To(BeTrue())
		})

		It("returns an error if ctx is canceled while waiting", func() {
			Expect(sem.TryAcquire()).To(BeTrue())
			Expect(sem.TryAcquire()).To(BeTrue())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			err := sem.Acquire(ctx)
			Expect(err).To(Equal(context.DeadlineExceeded))
		})
	})
})
