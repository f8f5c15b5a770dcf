package main

import (
	"os"
	"path/filepath"

	"github.com/reusee/taipas/cmds"
)

var files []string

func init() {
	cmds.Define("-file", cmds.Func(func(pattern string) {
		paths, err := filepath.Glob(pattern)
		if err != nil || len(paths) == 0 {
			// reported when opened
			files = append(files, pattern)
			return
		}
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, path)
		}
	}).Desc("run matching source files").Alias("-f"))
}
