package retry_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/retry"
)

var _ = Describe("type ExponentialBackoff", func() {
	var (
		now   time.Time
		rp    ExponentialBackoff
		cause error
	)

	BeforeEach(func() {
		now = time.Now()
		rp = ExponentialBackoff{
			Min: 100 * time.Millisecond,
			Max: 1 * time.Hour,
		}
		cause = errors.New("<error>")
	})

	It("uses the minimum delay on the first failure", func() {
		next := rp.NextRetry(now, 0, cause)
		delay := next.Sub(now)

		Expect(delay).To(Equal(100 * time.Millisecond))
	})

	It("increases the delay with subsequent failures", func() {
		var next time.Time

		for failures := 0; failures <= 5; failures++ {
			n := rp.NextRetry(now, failures, cause)
			Expect(n).To(BeTemporally(">", next))

			next = n
		}
	})

	It("caps the delay at the maximum delay", func() {
		next := rp.NextRetry(now, math.MaxUint32, cause)
		delay := next.Sub(now)

		Expect(delay).To(Equal(1 * time.Hour))
	})

	It("supports random jitter", func() {
		rp.Jitter = 0.1

		next := rp.NextRetry(now, 0, cause)
		Expect(next).To(BeTemporally("~", now.Add(100*time.Millisecond), 10*time.Millisecond))

		for i := 0; i < 100; i++ {
			n := rp.NextRetry(now, 0, cause)
			if !n.Equal(next) {
				return
			}
		}

		Fail("100 iterations returned results with no jitter")
	})
})

var _ = Describe("type FixedDelay", func() {
	It("uses the same delay after every failure", func() {
		now := time.Now()
		rp := FixedDelay{Delay: 5 * time.Minute}

		Expect(rp.NextRetry(now, 0, nil)).To(Equal(now.Add(5 * time.Minute)))
		Expect(rp.NextRetry(now, 7, nil)).To(Equal(now.Add(5 * time.Minute)))
	})
})

var _ = Describe("var Immediate", func() {
	It("makes the job due straight away", func() {
		now := time.Now()
		Expect(Immediate.NextRetry(now, 3, nil)).To(Equal(now))
	})
})
