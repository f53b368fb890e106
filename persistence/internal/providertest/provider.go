package providertest

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
)

func declareProviderTests(tc *TestContext) {
	ginkgo.Describe("type Provider (interface)", func() {
		var provider persistence.Provider

		ginkgo.BeforeEach(func() {
			var close func()
			provider, close = tc.Out.NewProvider()
			if close != nil {
				ginkgo.DeferCleanup(close)
			}
		})

		ginkgo.Describe("func Open()", func() {
			ginkgo.It("allows repeat calls for the same key", func() {
				ds1, err := provider.Open(tc.Context, "<key>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds1.Close()

				ds2, err := provider.Open(tc.Context, "<key>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds2.Close()
			})

			ginkgo.It("returns data-stores that share data for the same key", func() {
				ds1, err := provider.Open(tc.Context, "<key>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds1.Close()

				ds2, err := provider.Open(tc.Context, "<key>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds2.Close()

				persist(
					tc.Context,
					ds1,
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<execution>",
							ProcessInstanceID: "<execution>",
						},
					},
				)

				x := loadExecution(tc.Context, ds2, "<execution>")
				gomega.Expect(x.Revision).To(gomega.BeEquivalentTo(1))
			})

			ginkgo.It("returns data-stores that do not share data for different keys", func() {
				ds1, err := provider.Open(tc.Context, "<key-1>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds1.Close()

				ds2, err := provider.Open(tc.Context, "<key-2>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				defer ds2.Close()

				persist(
					tc.Context,
					ds1,
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<execution>",
							ProcessInstanceID: "<execution>",
						},
					},
				)

				_, ok, err := ds2.LoadExecution(tc.Context, "<execution>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
			})
		})
	})
}
