package pasconfigs

import (
	"github.com/reusee/taipas/cmds"
	"github.com/reusee/taipas/configs"
)

// Dumps selects the intermediate forms printed for each unit.
type Dumps struct {
	AST    bool
	Source bool
	IR     bool
	Stats  bool
}

var (
	dumpASTFlag    = cmds.Switch("-dump-ast")
	dumpSourceFlag = cmds.Switch("-dump-source")
	dumpIRFlag     = cmds.Switch("-dump-ir")
	statsFlag      = cmds.Switch("-stats")
)

func init() {
	cmds.GlobalExecutor.Define("-dump-all", cmds.Func(func() {
		*dumpASTFlag = true
		*dumpSourceFlag = true
		*dumpIRFlag = true
		*statsFlag = true
	}).Desc("dump every intermediate form"))
}

func (Module) Dumps(
	loader configs.Loader,
) Dumps {
	config := func(key string) bool {
		v, _ := configs.First[bool](loader, key)
		return v
	}
	return Dumps{
		AST:    *dumpASTFlag || config("dump_ast"),
		Source: *dumpSourceFlag || config("dump_source"),
		IR:     *dumpIRFlag || config("dump_ir"),
		Stats:  *statsFlag || config("stats"),
	}
}
