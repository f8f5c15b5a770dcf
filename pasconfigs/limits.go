package pasconfigs

import (
	"cmp"

	"github.com/reusee/taipas/cmds"
	"github.com/reusee/taipas/configs"
)

type MaxSteps int

var _ configs.Configurable = MaxSteps(0)

func (MaxSteps) ConfigKey() string {
	return "max_steps"
}

var maxStepsFlag = cmds.Var[int]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	config, _ := configs.Lookup[MaxSteps](loader)
	return cmp.Or(
		MaxSteps(*maxStepsFlag),
		config,
	)
}

type YieldInterval int

var _ configs.Configurable = YieldInterval(0)

func (YieldInterval) ConfigKey() string {
	return "yield_interval"
}

var yieldIntervalFlag = cmds.Var[int]("-yield-interval")

const DefaultYieldInterval = 1 << 16

func (Module) YieldInterval(
	loader configs.Loader,
) YieldInterval {
	config, _ := configs.Lookup[YieldInterval](loader)
	return cmp.Or(
		YieldInterval(*yieldIntervalFlag),
		config,
		DefaultYieldInterval,
	)
}

type MaxCallDepth int

var _ configs.Configurable = MaxCallDepth(0)

func (MaxCallDepth) ConfigKey() string {
	return "max_call_depth"
}

var maxCallDepthFlag = cmds.Var[int]("-max-call-depth")

func (Module) MaxCallDepth(
	loader configs.Loader,
) MaxCallDepth {
	config, _ := configs.Lookup[MaxCallDepth](loader)
	return cmp.Or(
		MaxCallDepth(*maxCallDepthFlag),
		config,
	)
}

type Parallel int

var _ configs.Configurable = Parallel(0)

func (Parallel) ConfigKey() string {
	return "parallel"
}

var parallelFlag = cmds.Var[int]("-parallel")

const DefaultParallel = 4

func (Module) Parallel(
	loader configs.Loader,
) Parallel {
	config, _ := configs.Lookup[Parallel](loader)
	return cmp.Or(
		Parallel(*parallelFlag),
		config,
		DefaultParallel,
	)
}
