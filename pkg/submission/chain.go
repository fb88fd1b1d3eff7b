package submission

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
)

// ErrNoStrategies is returned by a Chain with nothing to try.
var ErrNoStrategies = errors.New("no submission strategies")

// Chain evaluates strategies in order and stops at the first success.
type Chain struct {
	Strategies []Strategy
	// OnFailure observes every failed attempt, including those a later
	// strategy recovers from.
	OnFailure func(index int, s Strategy, err error)
	// OnSuccess observes the winning attempt.
	OnSuccess func(index int, s Strategy)
}

// Run returns the strategy that delivered the payload, or the error of the
// last strategy tried. A done context stops the chain before the next attempt.
func (c *Chain) Run(ctx context.Context, p Payload) (Strategy, error) {
	if len(c.Strategies) == 0 {
		return nil, ErrNoStrategies
	}

	var (
		next   int
		winner Strategy
	)

	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return retry.Unrecoverable(err)
			}

			idx := next
			next++
			s := c.Strategies[idx]
			if err := s.Submit(ctx, p); err != nil {
				if c.OnFailure != nil {
					c.OnFailure(idx, s, err)
				}
				return err
			}

			winner = s
			if c.OnSuccess != nil {
				c.OnSuccess(idx, s)
			}
			return nil
		},
		retry.Attempts(uint(len(c.Strategies))),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return winner, nil
}
