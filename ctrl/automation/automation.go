// Package automation compiles and simulates the Verilog sources of one
// assignment folder, then captures the simulator output and the waveform of
// each as images.
package automation

import (
	"github.com/celskeggs/vlauto/ctrl/config"
	"github.com/celskeggs/vlauto/ctrl/report"
	"github.com/celskeggs/vlauto/ctrl/util"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

type Options struct {
	Verbose bool
	// Runner defaults to an ExecRunner on the process's own stdio.
	Runner util.Runner
	// Reporter defaults to standard output.
	Reporter *report.Reporter
	// Tools defaults to config.LoadTools for the workspace.
	Tools *config.Tools
}

type Automation struct {
	ConfigPath string
	Workspace  string
	Assignment string
	Images     string
	Config     *config.Document
	Tools      config.Tools

	runner util.Runner
	out    *report.Reporter
}

// New loads the configuration and prepares the image folder. Any error here
// is fatal to the whole run. An empty workspace means the current directory.
func New(configPath, workspace string, opts Options) (*Automation, error) {
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workspace = wd
	}
	workspace, err := filepath.Abs(workspace)
	if err != nil {
		return nil, err
	}
	doc, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	a := &Automation{
		ConfigPath: configPath,
		Workspace:  workspace,
		Assignment: doc.AssignmentDir(workspace),
		Config:     doc,
		runner:     opts.Runner,
		out:        opts.Reporter,
	}
	a.Images = filepath.Join(a.Assignment, "imgs")
	if opts.Tools != nil {
		a.Tools = *opts.Tools
	} else if a.Tools, err = config.LoadTools(workspace); err != nil {
		return nil, err
	}
	if a.runner == nil {
		a.runner = util.ExecRunner{}
	}
	if a.out == nil {
		a.out = report.New(os.Stdout, opts.Verbose)
	}
	if err := os.MkdirAll(a.Images, 0o755); err != nil {
		return nil, errors.Wrap(err, "cannot create images folder")
	}
	a.out.Info("Workspace root: %s", a.Workspace)
	a.out.Info("Assignment folder: %s", a.Assignment)
	a.out.Info("Images folder: %s", a.Images)
	return a, nil
}

// ProcessFile runs one source through the pipeline. Compilation and
// simulation failures fail the file; a missing screenshot or waveform only
// produces a warning.
func (a *Automation) ProcessFile(f config.File) error {
	a.out.Banner("Processing file: " + f.Name)

	if err := a.Compile(f); err != nil {
		return err
	}
	if err := a.Simulate(f); err != nil {
		return err
	}
	if err := a.CaptureTerminal(f); err != nil {
		a.out.Debug("terminal capture skipped: %v", err)
	}
	if f.Plot {
		if err := a.PlotWaveform(f); err != nil {
			a.out.Warn("Could not generate waveform plot for %s", f.VCDFile)
		}
	} else {
		a.out.Info("Skipping waveform plot for %s (plot disabled in config)", f.Name)
	}
	a.out.Success("Completed processing %s", f.Name)
	return nil
}

type Summary struct {
	Succeeded int
	Total     int
	Output    string
	// Err collects the failure of every file that did not succeed.
	Err error
}

func (s Summary) OK() bool {
	return s.Succeeded == s.Total
}

func (a *Automation) Run() Summary {
	a.out.Info("Starting Verilog automation for: %s", a.ConfigPath)
	a.out.Info("Assignment folder: %s", a.Assignment)

	summary := Summary{
		Total:  len(a.Config.Files),
		Output: a.Images,
	}
	var failures *multierror.Error
	for _, f := range a.Config.Files {
		if err := a.ProcessFile(f); err != nil {
			failures = multierror.Append(failures, errors.Wrap(err, f.Name))
		} else {
			summary.Succeeded++
		}
	}
	summary.Err = failures.ErrorOrNil()

	a.out.Banner("SUMMARY")
	a.out.Info("Successfully processed: %d/%d files", summary.Succeeded, summary.Total)
	a.out.Info("Output directory: %s", summary.Output)
	if summary.Err != nil {
		a.out.Debug("%v", summary.Err)
	}
	return summary
}
