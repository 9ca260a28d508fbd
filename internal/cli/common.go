package cli

import (
	"context"
	"fmt"
)

// requireExists resolves a reference-data identity or fails the command.
// A lookup failure and an unknown id are both command errors: the sale or
// shipment never started.
func requireExists(ctx context.Context, kind, id string, check func(context.Context, string) (bool, error)) error {
	ok, err := check(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to look up %s %s", kind, id), err)
	}
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown %s: %s", kind, id))
	}
	return nil
}
