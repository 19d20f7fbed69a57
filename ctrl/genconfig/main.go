package main

import (
	"fmt"
	"github.com/celskeggs/vlauto/ctrl/config"
	"github.com/spf13/cobra"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type assignment struct {
	Folder string
	Files  []string
}

// discover finds the folders directly under root that hold Verilog sources.
func discover(root string) ([]assignment, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var found []assignment
	for _, ent := range entries {
		if !ent.IsDir() || strings.HasPrefix(ent.Name(), ".") {
			continue
		}
		files, err := config.Discover(filepath.Join(root, ent.Name()))
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			found = append(found, assignment{Folder: ent.Name(), Files: files})
		}
	}
	return found, nil
}

func generate(root string) error {
	fmt.Printf("Verilog Automation Framework - Configuration Generator\n")
	fmt.Printf("%s\n", strings.Repeat("=", 60))
	fmt.Printf("Current directory: %s\n", root)

	found, err := discover(root)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Printf("No assignment directories with Verilog files found.\n")
		return nil
	}

	fmt.Printf("\nFound %d assignment directories:\n", len(found))
	for i, a := range found {
		fmt.Printf("%d. %s (%d Verilog files)\n", i+1, a.Folder, len(a.Files))
		for _, name := range a.Files {
			fmt.Printf("   - %s\n", name)
		}
	}

	fmt.Printf("\nCreating configuration files...\n")
	for _, a := range found {
		name := a.Folder + ".json"
		if err := config.Sample(a.Folder, a.Files).Write(filepath.Join(root, name)); err != nil {
			return err
		}
		fmt.Printf("Created configuration file: %s\n", name)
	}

	fmt.Printf("\n✓ Configuration files created!\n")
	fmt.Printf("\nTo run automation for an assignment, use:\n")
	for _, a := range found {
		fmt.Printf("  vlauto %s.json\n", a.Folder)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Write a vlauto configuration for every assignment folder with Verilog sources.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := os.Getwd()
		if err != nil {
			return err
		}
		return generate(root)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
