package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/manifest"
	"github.com/AnyUserName/pngfixture/internal/pipeline"
	"github.com/AnyUserName/pngfixture/internal/plan"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <plan.yaml>",
	Short: "Generate every fixture listed in a YAML plan and write a manifest",
	Long: `Reads a YAML plan:

  out_dir: testdata/images
  defaults:
    color: "000000"
  fixtures:
    - out: png_100x100.png
      width: 100
      height: 100
      color: 1e88e5

generates all fixtures in parallel and writes ` + manifest.FileName + `
into the output directory. The manifest is only written when every
fixture succeeded.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "output directory (overrides the plan's out_dir)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	reqs, err := p.Requests(batchOutDir)
	if err != nil {
		return fmt.Errorf("plan %s: %w", args[0], err)
	}
	baseDir := p.BaseDir(batchOutDir)

	logVerbose("plan:    %s (%d fixtures)", args[0], len(reqs))
	logVerbose("output:  %s", baseDir)

	m, err := pipeline.New(pipeline.Config{
		BaseDir:  baseDir,
		Workers:  batchWorkers,
		Verbose:  verbose,
		Registry: encoder.NewRegistry(),
	}).Run(reqs)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	manifestPath := filepath.Join(baseDir, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Fixtures:  %d\n", m.Stats.TotalFixtures)
	fmt.Fprintf(out, "  Size:      %s\n", formatBytes(m.Stats.TotalBytes))
	fmt.Fprintf(out, "  Manifest:  %s\n", manifestPath)
	fmt.Fprintf(out, "  Time:      %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
