package automation

import (
	"github.com/celskeggs/vlauto/ctrl/chart/wave"
	"github.com/celskeggs/vlauto/ctrl/config"
	"github.com/celskeggs/vlauto/ctrl/util"
	"github.com/pkg/errors"
	"path/filepath"
)

var (
	ErrToolMissing  = errors.New("tool not found")
	ErrInputMissing = errors.New("input file not found")
)

func resultError(result util.Result, msg string) error {
	if result.Err != nil {
		return errors.Wrap(result.Err, msg)
	}
	return errors.Errorf("%s: %s", msg, result.Status)
}

func (a *Automation) run(cmd util.Command) util.Result {
	if cmd.Dir == "" {
		a.out.Info("Running: %s", cmd)
	} else {
		a.out.Info("Running: %s (in %s)", cmd, cmd.Dir)
	}
	result := a.runner.Run(cmd)
	if !result.OK() {
		if result.Status == util.StatusFailed {
			a.out.Info("Command failed with return code %d", result.ExitCode)
		}
		if result.Stderr != "" {
			a.out.Error("%s", result.Stderr)
		}
	}
	return result
}

// startable checks that a tool can be started at all; its exit status does not
// matter.
func (a *Automation) startable(tool string) bool {
	result := a.runner.Run(util.Command{Path: tool, Args: []string{"-V"}})
	a.out.Debug("version check %s -V: %s", tool, result.Status)
	return result.Status != util.StatusNotFound
}

func (a *Automation) Compile(f config.File) error {
	a.out.Stage("Compiling Verilog files")
	if !a.startable(a.Tools.Compiler) {
		a.out.Error("%s not found. Please install Icarus Verilog.", a.Tools.Compiler)
		return errors.Wrap(ErrToolMissing, a.Tools.Compiler)
	}
	source := filepath.Join(a.Assignment, f.Name)
	if !util.Exists(source) {
		a.out.Error("Verilog file not found: %s", source)
		return errors.Wrap(ErrInputMissing, source)
	}
	result := a.run(util.Command{
		Path: a.Tools.Compiler,
		Args: []string{"-o", f.CompiledName(), f.Name},
		Dir:  a.Assignment,
	})
	if !result.OK() {
		a.out.Failure("Compilation failed")
		return resultError(result, "compilation failed")
	}
	a.out.Success("Compilation successful: %s", f.CompiledName())
	return nil
}

func (a *Automation) Simulate(f config.File) error {
	a.out.Stage("Running simulation")
	if !a.startable(a.Tools.Simulator) {
		a.out.Error("%s not found. Please install Icarus Verilog.", a.Tools.Simulator)
		return errors.Wrap(ErrToolMissing, a.Tools.Simulator)
	}
	compiled := filepath.Join(a.Assignment, f.CompiledName())
	if !util.Exists(compiled) {
		a.out.Error("VVP file not found: %s", compiled)
		return errors.Wrap(ErrInputMissing, compiled)
	}
	result := a.run(util.Command{
		Path:        a.Tools.Simulator,
		Args:        []string{f.CompiledName()},
		Dir:         a.Assignment,
		Passthrough: true,
	})
	if !result.OK() {
		a.out.Failure("Simulation failed")
		return resultError(result, "simulation failed")
	}
	a.out.Success("Simulation completed successfully")
	return nil
}

// CaptureTerminal reruns the simulation under termshot from inside the
// assignment folder. Every failure here is reported and returned, but the
// caller treats it as best effort.
func (a *Automation) CaptureTerminal(f config.File) error {
	a.out.Stage("Capturing terminal output")
	tool := a.Tools.Screenshot
	if _, err := a.runner.LookPath(tool); err != nil {
		a.out.Warn("%s not found in PATH.", tool)
		a.out.Info("Please install termshot from: https://github.com/homeport/termshot")
		a.out.Info("Skipping terminal screenshot capture.")
		return errors.Wrap(ErrToolMissing, tool)
	}
	compiled := filepath.Join(a.Assignment, f.CompiledName())
	if !util.Exists(compiled) {
		a.out.Error("VVP file not found: %s", compiled)
		return errors.Wrap(ErrInputMissing, compiled)
	}
	output := filepath.Join(a.Images, f.TerminalImage())
	err := util.InDir(a.Assignment, func() error {
		result := a.run(util.Command{
			Path: tool,
			Args: []string{"--filename", output, "-c", "--", a.Tools.Simulator, f.CompiledName()},
		})
		if !result.OK() {
			a.out.Failure("Failed to capture terminal output")
			return resultError(result, "termshot failed")
		}
		return nil
	})
	if err != nil {
		a.out.Info("Continuing without terminal screenshot...")
		return err
	}
	a.out.Success("Terminal output captured: %s", output)
	return nil
}

func (a *Automation) PlotWaveform(f config.File) error {
	a.out.Stage("Generating waveform plots")
	output := filepath.Join(a.Images, f.WaveformImage())
	err := wave.PlotVCD(filepath.Join(a.Assignment, f.VCDFile), output, wave.Selection{
		Variables: f.Variables,
		Module:    f.Module,
	})
	var noSignals *wave.NoSignalsError
	switch {
	case errors.As(err, &noSignals):
		a.out.Warn("No signals found for module '%s' in VCD file", noSignals.Module)
		a.out.Info("Available signals: %v", noSignals.Available)
		return err
	case err != nil:
		a.out.Error("%v", err)
		return err
	}
	a.out.Success("Waveform plot saved: %s", output)
	return nil
}
