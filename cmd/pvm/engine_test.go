package main

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence"
	"github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	"github.com/spf13/viper"
)

var _ = Describe("func newProvider()", func() {
	AfterEach(func() {
		viper.Reset()
	})

	It("uses BoltDB by default", func() {
		viper.Set("bolt-path", "<path>")

		p, err := newProvider()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(p).To(Equal(&boltpersistence.FileProvider{Path: "<path>"}))
	})

	DescribeTable(
		"it uses SQL when a driver is configured",
		func(driver string) {
			viper.Set("sql-driver", driver)
			viper.Set("sql-dsn", "<dsn>")

			p, err := newProvider()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(p).To(BeAssignableToTypeOf(&sqlpersistence.DSNProvider{}))

			dsn := p.(*sqlpersistence.DSNProvider)
			Expect(dsn.DriverName).To(Equal(driver))
			Expect(dsn.DSN).To(Equal("<dsn>"))
		},
		Entry("sqlite", "sqlite"),
		Entry("postgres", "pgx"),
	)

	It("returns an error if the DSN is missing", func() {
		viper.Set("sql-driver", "sqlite")

		_, err := newProvider()
		Expect(err).To(MatchError(ContainSubstring("--sql-dsn")))
	})

	It("returns an error if the driver is unsupported", func() {
		viper.Set("sql-driver", "oracle")
		viper.Set("sql-dsn", "<dsn>")

		_, err := newProvider()
		Expect(err).To(MatchError("unsupported SQL driver 'oracle'"))
	})
})

var _ = Describe("func loadDefinitions()", func() {
	AfterEach(func() {
		viper.Reset()
	})

	It("loads the definitions in the directory", func() {
		dir := GinkgoT().TempDir()
		err := os.WriteFile(
			filepath.Join(dir, "order.yaml"),
			[]byte("id: order\nactivities:\n  - id: start\n    type: end\n"),
			0600,
		)
		Expect(err).ShouldNot(HaveOccurred())

		viper.Set("definitions", dir)

		defs, err := loadDefinitions()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(defs).To(HaveLen(1))
		Expect(defs[0].ID).To(Equal("order"))
	})

	It("treats a missing directory as empty", func() {
		viper.Set("definitions", filepath.Join(GinkgoT().TempDir(), "missing"))

		defs, err := loadDefinitions()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(defs).To(BeEmpty())
	})
})
