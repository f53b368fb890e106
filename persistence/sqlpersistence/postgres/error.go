package postgres

import (
	"context"
	"strings"
)

// convertContextErrors converts PostgreSQL "query_canceled" errors in *err
// into a context.Canceled or DeadlineExceeded error.
//
// The server reports its own error if the context is canceled after a query
// is already started.
func convertContextErrors(ctx context.Context, err *error) {
	if *err != nil && ctx.Err() != nil {
		if strings.Contains((*err).Error(), "canceling statement due to user request") {
			*err = ctx.Err()
		}
	}
}
