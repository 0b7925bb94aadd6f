package planner

import "github.com/danieljhkim/nameswap/internal/resolve"

// SelectStrategy picks the execution strategy from the entry kinds and their
// containment. Entries where one contains the other are swapped without
// staging, ancestor first; everything else uses the staged swap.
func SelectStrategy(isFile1, isFile2 bool, mode resolve.Containment) Strategy {
	nested := func(first int) Strategy {
		return Strategy{Kind: StrategyNested, FirstToExecute: first}
	}
	staged := func(first int) Strategy {
		return Strategy{Kind: StrategyStaged, FirstToExecute: first}
	}

	switch {
	case isFile1 && isFile2:
		return staged(1)
	case !isFile1 && !isFile2:
		switch mode {
		case resolve.FirstContainsSecond:
			return nested(1)
		case resolve.SecondContainsFirst:
			return nested(2)
		default:
			return staged(1)
		}
	case isFile1 && !isFile2:
		if mode == resolve.SecondContainsFirst {
			return nested(2)
		}
		return staged(1)
	default:
		if mode == resolve.FirstContainsSecond {
			return nested(1)
		}
		return staged(2)
	}
}

// Steps expands a strategy into the ordered renames that perform it.
//
// Nested: first entry to its final path, then the second entry to its final
// path. Staged: the second entry is parked at its staging path, the first
// entry takes its final path, then the parked entry takes its final path.
func Steps(plan *ExchangePlan, strategy Strategy) []Step {
	firstN := strategy.FirstToExecute
	secondN := strategy.SecondToExecute()
	first := plan.Entry(firstN)
	second := plan.Entry(secondN)

	if strategy.Kind == StrategyNested {
		return []Step{
			{Kind: StepDirect, Entry: firstN, From: first.OriginalPath, To: first.FinalPath},
			{Kind: StepDirect, Entry: secondN, From: second.OriginalPath, To: second.FinalPath},
		}
	}

	return []Step{
		{Kind: StepStage, Entry: secondN, From: second.OriginalPath, To: second.StagingPath},
		{Kind: StepDirect, Entry: firstN, From: first.OriginalPath, To: first.FinalPath},
		{Kind: StepRestage, Entry: secondN, From: second.StagingPath, To: second.FinalPath},
	}
}
