package pasconfigs

import (
	"cmp"

	"github.com/reusee/taipas/cmds"
	"github.com/reusee/taipas/configs"
	"github.com/xyproto/env/v2"
)

type Prompt string

var _ configs.Configurable = Prompt("")

func (Prompt) ConfigKey() string {
	return "prompt"
}

var promptFlag = cmds.Var[string]("-prompt")

const DefaultPrompt = "ready> "

func (Module) Prompt(
	loader configs.Loader,
) Prompt {
	config, _ := configs.Lookup[Prompt](loader)
	return cmp.Or(
		Prompt(*promptFlag),
		config,
		DefaultPrompt,
	)
}

// Color enables colored diagnostics.
type Color bool

var _ configs.Configurable = Color(false)

func (Color) ConfigKey() string {
	return "color"
}

var noColorFlag = cmds.Switch("-no-color")

func (Module) Color(
	loader configs.Loader,
) Color {
	if *noColorFlag || env.Bool("NO_COLOR") {
		return false
	}
	if config, ok := configs.Lookup[Color](loader); ok {
		return config
	}
	return true
}
