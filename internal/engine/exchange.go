package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/nameswap/internal/naming"
	"github.com/danieljhkim/nameswap/internal/planner"
	"github.com/danieljhkim/nameswap/internal/resolve"
)

// Exchange swaps the base names of two filesystem entries while each keeps
// its own extension and parent directory.
//
// The exchange runs resolve, extract, plan, strategy and execute in that
// order and stops at the first failure. The returned result always carries
// the result code, including when an error is returned.
func (e *Engine) Exchange(ctx context.Context, req *ExchangeRequest) (*ExchangeResult, error) {
	result := &ExchangeResult{DryRun: req.DryRun}

	if !req.DryRun {
		unlock, err := e.acquireLock(ctx)
		if err != nil {
			return e.fail(result, err)
		}
		defer unlock()
	}

	resolver := resolve.New(e.fs, e.baseDir(), e.settings.RelativeMode())
	pair, err := resolver.Resolve(req.Path1, req.Path2)
	if err != nil {
		return e.fail(result, fmt.Errorf("failed to resolve paths: %w", err))
	}
	result.Pair = pair

	result.First = naming.Extract(pair.First.Path, pair.First.IsFile)
	result.Second = naming.Extract(pair.Second.Path, pair.Second.IsFile)
	e.logger.WithFields(logrus.Fields{
		"first":       result.First.Name(),
		"first_kind":  pair.First.Kind(),
		"second":      result.Second.Name(),
		"second_kind": pair.Second.Kind(),
		"containment": pair.Containment.String(),
	}).Debug("resolved exchange")

	plan, err := planner.BuildExchangePlan(pair, result.First, result.Second, e.stager, e.fs)
	if err != nil {
		return e.fail(result, fmt.Errorf("failed to build plan: %w", err))
	}
	result.Plan = plan
	if plan.HasConflicts() {
		return e.fail(result, fmt.Errorf("%w: %d destination(s) already taken", ErrConflict, len(plan.Conflicts)))
	}

	result.Strategy = planner.SelectStrategy(pair.First.IsFile, pair.Second.IsFile, pair.Containment)
	result.Steps = planner.Steps(plan, result.Strategy)

	if req.DryRun {
		return result, nil
	}

	return result, e.execute(result)
}

// ExchangeCode performs an exchange and reports only its result code.
func (e *Engine) ExchangeCode(ctx context.Context, raw1, raw2 string) int {
	result, _ := e.Exchange(ctx, &ExchangeRequest{Path1: raw1, Path2: raw2})
	return int(result.Code)
}

func (e *Engine) fail(result *ExchangeResult, err error) (*ExchangeResult, error) {
	result.Code = e.code(err)
	e.logger.WithError(err).WithField("code", int(result.Code)).Debug("exchange rejected")
	return result, err
}
