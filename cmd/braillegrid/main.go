package main

import (
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/braillegrid/internal/braille"
	"github.com/san-kum/braillegrid/internal/config"
	"github.com/san-kum/braillegrid/internal/export"
	"github.com/san-kum/braillegrid/internal/raster"
	"github.com/san-kum/braillegrid/internal/storage"
	"github.com/san-kum/braillegrid/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	threshold  float64
	invert     bool
	dither     bool
	contrast   float64
	resample   string
	// Viewer
	fps   int
	theme string
	scene string
	seed  int64
	// Output
	raw      bool
	outFile  string
	scale    float64
	snapshot string
	name     string
)

// main registers commands and flags, starts the viewer when no subcommand is
// given, and exits with status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "braillegrid",
		Short: "high resolution terminal graphics with braille dots",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".braillegrid", "snapshot directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in dots")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in dots")
	pf.Float64Var(&threshold, "threshold", config.DefaultThreshold, "lightness threshold (0..1)")
	pf.BoolVar(&invert, "invert", false, "light dark pixels")
	pf.BoolVar(&dither, "dither", false, "floyd-steinberg dithering")
	pf.Float64Var(&contrast, "contrast", 0, "contrast adjustment (-100..100)")
	pf.StringVar(&resample, "resample", config.DefaultResample, "scaling filter ("+strings.Join(raster.Resamplers(), ", ")+")")

	viewFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
		cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		cmd.Flags().StringVar(&scene, "scene", config.DefaultScene, "animated scene ("+strings.Join(viz.SceneNames(), ", ")+")")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	}
	viewFlags(rootCmd)

	viewCmd := &cobra.Command{
		Use:   "view [image]",
		Short: "interactive viewer for an image or animated scenes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewFlags(viewCmd)

	renderCmd := &cobra.Command{
		Use:   "render [image]",
		Short: "print an image as braille",
		Args:  cobra.ExactArgs(1),
		RunE:  renderImage,
	}
	renderCmd.Flags().BoolVar(&raw, "raw", false, "print cell masks as numbers")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [image]",
		Short: "export a rasterised image or a snapshot to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "dot spacing in svg units")
	exportSVGCmd.Flags().StringVar(&snapshot, "snapshot", "", "export a saved snapshot instead of an image")
	exportSVGCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	saveCmd := &cobra.Command{
		Use:   "save [image]",
		Short: "rasterise an image and store the canvas",
		Args:  cobra.ExactArgs(1),
		RunE:  saveSnapshot,
	}
	saveCmd.Flags().StringVar(&name, "name", "", "snapshot name (default image file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	showCmd.Flags().BoolVar(&raw, "raw", false, "print cell masks as numbers")

	inspectCmd := &cobra.Command{
		Use:   "inspect [id]",
		Short: "snapshot statistics and dot density per line",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectSnapshot,
	}
	inspectCmd.Flags().BoolVar(&raw, "raw", false, "also print cell masks as numbers")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tTHRESHOLD\tDITHER\tINVERT\tRESAMPLE\tTHEME")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Fprintf(w, "%s\t%dx%d\t%.2f\t%v\t%v\t%s\t%s\n",
					p,
					cfg.Canvas.Width, cfg.Canvas.Height,
					cfg.Raster.Threshold,
					cfg.Raster.Dither,
					cfg.Raster.Invert,
					cfg.Raster.Resample,
					cfg.View.Theme,
				)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(viewCmd, renderCmd, exportSVGCmd, saveCmd, listCmd, showCmd, inspectCmd, deleteCmd, presetsCmd)
	return rootCmd
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	o := viz.Options{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		FPS:    cfg.View.FPS,
		Theme:  cfg.View.Theme,
		Scene:  cfg.View.Scene,
		Seed:   seed,
		Raster: rasterOptions(cfg),
	}
	if len(args) == 1 {
		img, _, err := raster.Load(args[0])
		if err != nil {
			return err
		}
		o.Image, o.ImageName = img, filepath.Base(args[0])
	}
	return viz.Run(o)
}

func renderImage(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	c, err := rasterizeFile(args[0], cfg)
	if err != nil {
		return err
	}
	return printCanvas(cmd, c)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var c *braille.Canvas
	switch {
	case snapshot != "" && len(args) == 1:
		return fmt.Errorf("give either an image or --snapshot, not both")
	case snapshot != "":
		c, err = storage.New(dataDir).Canvas(snapshot)
	case len(args) == 1:
		c, err = rasterizeFile(args[0], cfg)
	default:
		return fmt.Errorf("nothing to export: give an image or --snapshot")
	}
	if err != nil {
		return err
	}

	style := viz.GetTheme(cfg.View.Theme).SVGStyle()
	if outFile == "" {
		return export.WriteSVG(cmd.OutOrStdout(), c, cfg.Export.Scale, style)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, c, cfg.Export.Scale, style); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	c, err := rasterizeFile(args[0], cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	n := name
	if n == "" {
		n = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	id, err := st.Save(n, args[0], c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d lit dots)\n", id, c.Lit())
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	snaps, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCELLS\tLIT\tSOURCE")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%s\n",
			s.ID,
			s.Name,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.CellWidth, s.CellHeight,
			s.Lit,
			s.Source,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	c, err := storage.New(dataDir).Canvas(args[0])
	if err != nil {
		return err
	}
	return printCanvas(cmd, c)
}

func inspectSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	c, err := st.Canvas(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:       %s\n", meta.ID)
	fmt.Fprintf(out, "name:     %s\n", meta.Name)
	fmt.Fprintf(out, "source:   %s\n", meta.Source)
	fmt.Fprintf(out, "cells:    %dx%d (%d allocated)\n", c.Width(), c.Height(), c.Len())
	total := c.Rows() * c.Width() * 8
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(c.Lit()) / float64(total)
	}
	fmt.Fprintf(out, "lit:      %d of %d dots (%.1f%%)\n", c.Lit(), total, pct)

	density := lineDensity(c)
	if len(density) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(density, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("lit dots per line")))
	}
	if raw {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.TrimPrefix(c.Raw(), "\n"))
	}
	return nil
}

// lineDensity counts lit dots on every text line of c.
func lineDensity(c *braille.Canvas) []float64 {
	density := make([]float64, c.Rows())
	for i, m := range c.Cells() {
		density[i/c.Width()] += float64(bits.OnesCount8(m))
	}
	return density
}

func printCanvas(cmd *cobra.Command, c *braille.Canvas) error {
	text := c.String()
	if raw {
		text = c.Raw()
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(text, "\n"))
	return err
}

func rasterizeFile(path string, cfg *config.Config) (*braille.Canvas, error) {
	img, _, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	c, err := braille.New(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return nil, err
	}
	if err := raster.Rasterize(img, c, rasterOptions(cfg)); err != nil {
		return nil, err
	}
	c.Reserve(c.Width() * c.Height())
	return c, nil
}
