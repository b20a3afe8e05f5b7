package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/level/formats"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

var (
	flagFmtYAML  bool
	flagFmtWrite bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <level>",
	Short: "Print a level in canonical form",
	Long: `Load a level and print its minimal definition: the most common surface
becomes the default, blocks and surfaces are listed column by column, and
the message and solutions are kept.

Examples:
  forcegrid fmt levels/01-intro.lvl
  forcegrid fmt levels/01-intro.lvl --yaml
  forcegrid fmt levels/01-intro.lvl --write`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&flagFmtYAML, "yaml", false, "Print the YAML level format")
	fmtCmd.Flags().BoolVar(&flagFmtWrite, "write", false, "Write the result back to the level file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	lvl, err := loader().Resolve(args[0])
	if err != nil {
		return err
	}

	b, err := puzzle.FromDefinition(lvl.Definition, simulation())
	if err != nil {
		return err
	}
	d, err := puzzle.ParseDefinition(b.Definition())
	if err != nil {
		return fmt.Errorf("re-reading canonical definition: %w", err)
	}

	out := formats.Level{ID: lvl.ID, Name: lvl.Name, Definition: d, Metadata: lvl.Metadata}
	var data []byte
	if flagFmtYAML {
		if data, err = formats.MarshalYAML(out); err != nil {
			return err
		}
	} else {
		data = formats.MarshalText(out)
	}

	if !flagFmtWrite {
		fmt.Print(string(data))
		return nil
	}
	if lvl.FilePath == "" {
		return fmt.Errorf("level %s has no file to write", lvl.ID)
	}
	if ext := strings.ToLower(filepath.Ext(lvl.FilePath)); flagFmtYAML != (ext == ".yaml" || ext == ".yml") {
		return fmt.Errorf("refusing to change the format of %s", lvl.FilePath)
	}
	if err := os.WriteFile(lvl.FilePath, data, 0o644); err != nil {
		return err
	}
	logger.Info("formatted", "path", lvl.FilePath)
	return nil
}
