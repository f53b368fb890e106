package providertest

import (
	"context"
	"time"

	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
)

// In is a container for values provided by the test suite to the
// provider-specific initialization code.
type In struct {
	// Key is the data-store key used by the tests.
	Key string
}

// Out is a container for values that are provided by the provider-specific
// initialization code to the test suite.
type Out struct {
	// NewProvider is a function that creates a new provider.
	NewProvider func() (p persistence.Provider, close func())

	// TestTimeout is the maximum duration allowed for each test.
	TestTimeout time.Duration
}

// DefaultTestTimeout is the default test timeout.
const DefaultTestTimeout = 10 * time.Second

// DefaultKey is the default data-store key.
const DefaultKey = "<cluster>"

// TestContext encapsulates the shared test context passed to the tests for each
// provider sub-system.
type TestContext struct {
	Context context.Context
	In      In
	Out     Out
}

// SetupDataStore sets up a new data-store.
func (tc *TestContext) SetupDataStore() (persistence.DataStore, func()) {
	p, close := tc.Out.NewProvider()

	ds, err := p.Open(tc.Context, tc.In.Key)
	if err != nil {
		if close != nil {
			close()
		}

		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	}

	return ds, func() {
		ds.Close()

		if close != nil {
			close()
		}
	}
}
