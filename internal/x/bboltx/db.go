package bboltx

import (
	"context"
	"os"

	"github.com/dogmatiq/linger"
	"go.etcd.io/bbolt"
)

// Open opens the BoltDB file that holds the engine's executions, variables,
// jobs and incidents, creating it if it does not exist.
//
// If mode is zero, 0600 is used.
//
// bbolt blocks while another process holds the file lock. Open waits no longer
// than the deadline of ctx, or opts.Timeout if that is sooner, and returns
// context.DeadlineExceeded when the wait expires.
func Open(
	ctx context.Context,
	path string,
	mode os.FileMode,
	opts *bbolt.Options,
) (*bbolt.DB, error) {
	if mode == 0 {
		mode = 0600
	}

	if ctx.Err() != nil {
		// A non-positive bbolt timeout means "wait forever".
		return nil, ctx.Err()
	}

	if timeout, ok := linger.FromContextDeadline(ctx); ok {
		if opts == nil {
			clone := *bbolt.DefaultOptions
			opts = &clone
			opts.Timeout = timeout
		} else if opts.Timeout == 0 || opts.Timeout > timeout {
			clone := *opts
			opts = &clone
			opts.Timeout = timeout
		}
	}

	db, err := bbolt.Open(path, mode, opts)

	if err != nil && err.Error() == "timeout" {
		err = context.DeadlineExceeded
	}

	return db, err
}
