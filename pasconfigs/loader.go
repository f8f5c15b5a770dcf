package pasconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taipas/configs"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/modes"
	"github.com/xyproto/env/v2"
)

//go:embed schema.cue
var schema string

var configFileNames = []string{
	"taipas.cue",
	".taipas.cue",
}

// ConfigsLoader finds taipas.cue files. Earlier paths take precedence:
// $TAIPAS_CONFIG, the working directory, the user config dir, then /etc.
func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {
	if mode == modes.ModeDevelopment {
		return configs.NewLoader(nil, schema)
	}

	var paths []string
	if path := env.Str("TAIPAS_CONFIG"); path != "" {
		paths = append(paths, path)
	}

	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config files",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
