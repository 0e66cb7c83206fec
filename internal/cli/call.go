package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/chupacabra/chupacabra/internal/common/apperrors"
	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const retryDelay = 250 * time.Millisecond

func (cc *cliContext) retryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(cc.opts.retries) + 1),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(apperrors.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Msg("retrying after network failure")
		}),
	}
}

// fetch runs one API call, retrying network failures when --retries is set.
func fetch[T any](cc *cliContext, cmd *cobra.Command, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx := cmd.Context()
	return retry.DoWithData(func() (T, error) {
		return fn(ctx)
	}, cc.retryOptions(ctx)...)
}

// exec is fetch for calls without a result.
func exec(cc *cliContext, cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx := cmd.Context()
	return retry.Do(func() error {
		return fn(ctx)
	}, cc.retryOptions(ctx)...)
}

// show fetches and prints.
func show[T any](cc *cliContext, cmd *cobra.Command, fn func(ctx context.Context) (T, error)) error {
	v, err := fetch(cc, cmd, fn)
	if err != nil {
		return err
	}
	return cc.printResult(v)
}

// require fails early when the logged-in user lacks level. The server
// enforces the same rule; checking here saves a round trip.
func (cc *cliContext) require(level types.PermissionLevel) error {
	return cc.session.Require(level)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
