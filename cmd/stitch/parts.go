package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/synthome/stitch/domain/recipe"
	"github.com/synthome/stitch/infrastructure/parts"
)

func partsCmd() *cobra.Command {
	var (
		envFile   string
		partsPath string
		families  bool
	)

	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List the modules in a parts library",
		Long: `List the modules in a parts library.

The library path is taken from --parts or STITCH_PARTS_PATH. With
--families, list the built-in recipe families and their construct counts
instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if families {
				return runFamilies()
			}
			return runParts(envFile, partsPath)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&partsPath, "parts", "", "Path to the parts library YAML file")
	cmd.Flags().BoolVar(&families, "families", false, "List built-in recipe families instead of modules")

	return cmd
}

func runParts(envFile, partsPath string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if partsPath == "" {
		partsPath = cfg.PartsPath()
	}
	if partsPath == "" {
		return fmt.Errorf("no parts library specified (use --parts or STITCH_PARTS_PATH)")
	}

	lib, err := parts.LoadLibrary(partsPath)
	if err != nil {
		return fmt.Errorf("load parts library: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tLENGTH")
	for _, name := range lib.Names() {
		mod, err := lib.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", mod.Name(), mod.Kind(), mod.Len())
	}
	return w.Flush()
}

func runFamilies() error {
	families := recipe.Families()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tCONSTRUCTS")
	for _, name := range recipe.FamilyNames() {
		fmt.Fprintf(w, "%s\t%d\n", name, len(families[name]))
	}
	return w.Flush()
}
