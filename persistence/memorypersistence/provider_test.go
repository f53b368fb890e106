package memorypersistence_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/internal/providertest"
	. "github.com/operaton/operaton-sub059/persistence/memorypersistence"
)

var _ = Describe("type Provider", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					return &Provider{}, nil
				},
			}
		},
		nil,
	)
})
