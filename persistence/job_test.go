package persistence_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/persistence"
)

var _ = Describe("type Job", func() {
	now := time.Now()

	Describe("func IsAcquirable()", func() {
		DescribeTable(
			"it reports whether the job can be acquired",
			func(j Job, expect bool) {
				Expect(j.IsAcquirable(now)).To(Equal(expect))
			},
			Entry("due immediately", Job{Retries: 1}, true),
			Entry("due in the past", Job{Retries: 1, DueDate: now.Add(-time.Second)}, true),
			Entry("due exactly now", Job{Retries: 1, DueDate: now}, true),
			Entry("due in the future", Job{Retries: 1, DueDate: now.Add(time.Second)}, false),
			Entry("no retries remaining", Job{}, false),
			Entry("suspended", Job{Retries: 1, Suspended: true}, false),
			Entry("locked", Job{Retries: 1, LockOwner: "<node>", LockExpiresAt: now.Add(time.Minute)}, false),
			Entry("lock expired", Job{Retries: 1, LockOwner: "<node>", LockExpiresAt: now.Add(-time.Minute)}, true),
		)
	})

	Describe("func LessForAcquisition()", func() {
		It("orders by priority first", func() {
			a := Job{Priority: 10, DueDate: now}
			b := Job{Priority: 1, DueDate: now.Add(-time.Hour)}
			Expect(a.LessForAcquisition(b)).To(BeTrue())
			Expect(b.LessForAcquisition(a)).To(BeFalse())
		})

		It("orders by due date when priorities are equal", func() {
			a := Job{DueDate: now.Add(-time.Hour)}
			b := Job{DueDate: now}
			Expect(a.LessForAcquisition(b)).To(BeTrue())
		})

		It("falls back to the ID", func() {
			Expect(Job{ID: "a"}.LessForAcquisition(Job{ID: "b"})).To(BeTrue())
		})
	})
})
