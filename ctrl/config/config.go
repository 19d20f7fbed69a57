// Package config describes which Verilog sources of an assignment folder get
// compiled, simulated and plotted.
package config

import (
	"encoding/json"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultModule = "TEST"

// File holds the settings for one Verilog source. Defaults are filled in by
// Load: VCDFile is <base>.vcd, Module is TEST and Plot is true. A nil
// Variables plots every signal of the module.
type File struct {
	Name      string
	VCDFile   string
	Variables []string
	Module    string
	Plot      bool
}

func (f File) Base() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

func (f File) CompiledName() string {
	return f.Base() + ".vvp"
}

func (f File) TerminalImage() string {
	return f.Base() + "_terminal.png"
}

func (f File) WaveformImage() string {
	return f.Base() + "_waveform.png"
}

type Document struct {
	Folder string
	Files  []File
}

// AssignmentDir resolves the folder relative to the workspace root, even when
// it is written with a leading slash.
func (d *Document) AssignmentDir(workspace string) string {
	return filepath.Join(workspace, strings.TrimLeft(d.Folder, "/"))
}

type jsonFile struct {
	Name      *string  `json:"name"`
	VCDFile   *string  `json:"vcd_file,omitempty"`
	Variables []string `json:"variables"`
	Module    *string  `json:"module,omitempty"`
	Plot      *bool    `json:"plot,omitempty"`
}

type jsonDocument struct {
	Folder *string     `json:"folder"`
	Files  *[]jsonFile `json:"files"`
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("configuration file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "configuration %s", path)
	}
	return doc, nil
}

func Decode(data []byte) (*Document, error) {
	var raw jsonDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}
	if raw.Folder == nil || *raw.Folder == "" {
		return nil, errors.New("config must contain 'folder' field")
	}
	if raw.Files == nil {
		return nil, errors.New("config must contain 'files' field")
	}
	doc := &Document{Folder: *raw.Folder}
	for i, rf := range *raw.Files {
		if rf.Name == nil || *rf.Name == "" {
			return nil, errors.Errorf("file entry %d is missing 'name' field", i)
		}
		f := File{
			Name:      *rf.Name,
			Variables: rf.Variables,
			Module:    DefaultModule,
			Plot:      true,
		}
		f.VCDFile = f.Base() + ".vcd"
		if rf.VCDFile != nil && *rf.VCDFile != "" {
			f.VCDFile = *rf.VCDFile
		}
		if rf.Module != nil && *rf.Module != "" {
			f.Module = *rf.Module
		}
		if rf.Plot != nil {
			f.Plot = *rf.Plot
		}
		doc.Files = append(doc.Files, f)
	}
	return doc, nil
}

// Sample builds the document the generator writes for a folder: every source
// plots all signals of the TEST module into <base>.vcd.
func Sample(folder string, names []string) *Document {
	doc := &Document{Folder: folder}
	for _, name := range names {
		f := File{Name: name, Module: DefaultModule, Plot: true}
		f.VCDFile = f.Base() + ".vcd"
		doc.Files = append(doc.Files, f)
	}
	return doc
}

func (d *Document) Encode() ([]byte, error) {
	files := make([]jsonFile, len(d.Files))
	for i := range d.Files {
		f := &d.Files[i]
		files[i] = jsonFile{
			Name:      &f.Name,
			VCDFile:   &f.VCDFile,
			Variables: f.Variables,
			Module:    &f.Module,
		}
		if !f.Plot {
			files[i].Plot = &f.Plot
		}
	}
	data, err := json.MarshalIndent(jsonDocument{Folder: &d.Folder, Files: &files}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (d *Document) Write(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Discover lists the Verilog sources directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ent := range entries {
		if !ent.IsDir() && filepath.Ext(ent.Name()) == ".v" {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
