package config

import (
	"github.com/celskeggs/vlauto/ctrl/util"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"runtime"
)

const (
	CompilerVar   = "VLAUTO_IVERILOG"
	SimulatorVar  = "VLAUTO_VVP"
	ScreenshotVar = "VLAUTO_TERMSHOT"
)

// Tools names the external programs the pipeline invokes.
type Tools struct {
	Compiler   string
	Simulator  string
	Screenshot string
}

func DefaultTools(goos string) Tools {
	tools := Tools{
		Compiler:   "iverilog",
		Simulator:  "vvp",
		Screenshot: "termshot",
	}
	if goos == "windows" {
		tools.Screenshot = "termshot.exe"
	}
	return tools
}

// LoadTools starts from the defaults and applies overrides, first from a
// .env file in the workspace root and then from the process environment.
// The .env file never modifies the environment itself.
func LoadTools(workspace string) (Tools, error) {
	tools := DefaultTools(runtime.GOOS)
	dotenv := filepath.Join(workspace, ".env")
	if util.Exists(dotenv) {
		values, err := godotenv.Read(dotenv)
		if err != nil {
			return Tools{}, errors.Wrapf(err, "reading %s", dotenv)
		}
		tools.apply(func(key string) string {
			return values[key]
		})
	}
	tools.apply(os.Getenv)
	return tools, nil
}

func (t *Tools) apply(lookup func(string) string) {
	for key, field := range map[string]*string{
		CompilerVar:   &t.Compiler,
		SimulatorVar:  &t.Simulator,
		ScreenshotVar: &t.Screenshot,
	} {
		if value := lookup(key); value != "" {
			*field = value
		}
	}
}
