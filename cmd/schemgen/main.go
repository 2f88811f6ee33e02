package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/oriumgames/mcschematic"
	"github.com/oriumgames/mcschematic/internal/build"
)

func main() {
	logger := log.New(os.Stderr, "[schemgen] ", log.LstdFlags)

	root := &cobra.Command{
		Use:           "schemgen",
		Short:         "Build Sponge v2 schematics from YAML block lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildCmd(logger), demoCmd(logger), versionsCmd())

	if err := root.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func buildCmd(logger *log.Logger) *cobra.Command {
	var input, output, version string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a schematic from a YAML build file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := build.Load(input)
			if err != nil {
				return err
			}
			if version != "" {
				f.Version = version
			}
			dv, err := f.DataVersion(mcschematic.JE_1_20_1)
			if err != nil {
				return err
			}

			s := mcschematic.New()
			s.SetMetadata("Generator", "schemgen")
			if quiet {
				err = f.Apply(s, nil)
			} else {
				bar := progressbar.Default(f.Cells(), "placing blocks")
				err = f.Apply(s, func(n int) { _ = bar.Add(n) })
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}
			return save(logger, s, output, dv)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML build file")
	cmd.Flags().StringVarP(&output, "output", "o", "out.schem", "output schematic path")
	cmd.Flags().StringVarP(&version, "version", "v", "", "Minecraft version or DataVersion, overrides the build file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func demoCmd(logger *log.Logger) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a small four-block test schematic",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcschematic.New()
			s.SetMetadata("Generator", "schemgen")
			s.SetBlock(mcschematic.Pos{X: 0, Y: -1, Z: 0}, "minecraft:stone")
			s.SetBlock(mcschematic.Pos{X: 1, Y: -2, Z: 0}, "minecraft:cobblestone")
			s.SetBlock(mcschematic.Pos{X: 0, Y: -2, Z: 1}, "minecraft:cobblestone")
			s.SetBlock(mcschematic.Pos{X: 1, Y: -1, Z: 1}, "minecraft:stone")
			return save(logger, s, output, mcschematic.JE_1_18_2)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "demo.schem", "output schematic path")
	return cmd
}

func versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List known Java Edition DataVersions",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RELEASE\tDATA VERSION")
			for _, r := range mcschematic.Releases() {
				fmt.Fprintf(tw, "%s\t%d\n", r.Name, r.DataVersion)
			}
			return tw.Flush()
		},
	}
}

func save(logger *log.Logger, s *mcschematic.Schematic, path string, dataVersion int32) error {
	w, h, l, err := s.Dimensions()
	if err != nil {
		return err
	}
	if err := s.Save(path, dataVersion); err != nil {
		return err
	}
	logger.Printf("saved to %s (%dx%dx%d, %d palette entries, %s)", path, w, h, l, s.PaletteSize(), describe(dataVersion))
	return nil
}

func describe(dataVersion int32) string {
	if name := mcschematic.VersionName(dataVersion); name != "" {
		return fmt.Sprintf("Java %s, data version %d", name, dataVersion)
	}
	return fmt.Sprintf("data version %d", dataVersion)
}
