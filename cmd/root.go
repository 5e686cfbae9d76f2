package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/fixture"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool

	genOut    string
	genWidth  int
	genHeight int
	genFormat string
	genColor  string
)

var rootCmd = &cobra.Command{
	Use:   "pngfixture --out <path> --width <n> --height <n>",
	Short: "Generate solid-color PNG files for test fixtures",
	Long: `pngfixture writes a solid-color truecolor PNG of the requested size.
It needs no image library: the PNG stream (signature, IHDR, one zlib
IDAT, IEND) is assembled directly.

Example:
  pngfixture --out testdata/images/png_100x100.png \
    --width 100 --height 100 --color 1e88e5`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pngfixture %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	f := rootCmd.Flags()
	f.StringVarP(&genOut, "out", "o", "", "output file path (parent directories are created)")
	f.IntVar(&genWidth, "width", 0, "image width in pixels")
	f.IntVar(&genHeight, "height", 0, "image height in pixels")
	f.StringVarP(&genFormat, "format", "f", fixture.DefaultFormat,
		"image format ("+strings.Join(encoder.NewRegistry().Available(), ", ")+" only)")
	f.StringVarP(&genColor, "color", "c", fixture.DefaultColor, "solid RGB color as 6 hex digits, optional leading #")
	for _, name := range []string{"out", "width", "height"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	reg := encoder.NewRegistry()
	logVerbose("%s", reg)

	res, err := fixture.Generate(reg, fixture.Request{
		Out:    genOut,
		Width:  genWidth,
		Height: genHeight,
		Format: genFormat,
		Color:  genColor,
	})
	if err != nil {
		return err
	}

	logVerbose("%dx%d #%s, %s, xxh64 %s", res.Width, res.Height, res.Color, formatBytes(res.Size), res.Hash)
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[pngfixture] "+format+"\n", args...)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
