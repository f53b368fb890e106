package providertest

import (
	"context"

	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
)

// persist persists a batch of operations and asserts that there was no failure.
func persist(
	ctx context.Context,
	p persistence.Persister,
	batch ...persistence.Operation,
) {
	err := p.Persist(ctx, batch)
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
}

// loadExecution loads an execution that is expected to exist.
func loadExecution(
	ctx context.Context,
	r persistence.ExecutionRepository,
	id string,
) persistence.Execution {
	x, ok, err := r.LoadExecution(ctx, id)
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	gomega.Expect(ok).To(gomega.BeTrue(), "execution does not exist")
	return x
}

// loadJob loads a job that is expected to exist.
func loadJob(
	ctx context.Context,
	r persistence.JobRepository,
	id string,
) persistence.Job {
	j, ok, err := r.LoadJob(ctx, id)
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	gomega.Expect(ok).To(gomega.BeTrue(), "job does not exist")
	return j
}

// jobIDs returns the IDs of the given jobs.
func jobIDs(jobs []persistence.Job) []string {
	var ids []string
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}
