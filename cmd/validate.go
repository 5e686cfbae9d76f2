package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/pngfixture/internal/encoder"
	"github.com/AnyUserName/pngfixture/internal/hasher"
	"github.com/AnyUserName/pngfixture/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path | out_dir>",
	Short: "Validate a batch manifest and check fixture files are unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs := validateManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d fixtures, %s, all files unchanged\n",
			m.Stats.TotalFixtures, formatBytes(m.Stats.TotalBytes))
		return nil
	}

	fmt.Fprintf(out, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	reg := encoder.NewRegistry()
	keys := make([]string, 0, len(m.Fixtures))
	for key := range m.Fixtures {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var totalBytes, totalPixels int64
	for _, key := range keys {
		f := m.Fixtures[key]
		totalBytes += f.Size
		totalPixels += int64(f.Width) * int64(f.Height)

		if err := (encoder.Image{Width: f.Width, Height: f.Height}).Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("fixture %q: %v", key, err))
		}
		if _, err := reg.Get(f.Format); err != nil {
			errs = append(errs, fmt.Sprintf("fixture %q: %v", key, err))
		}
		if _, err := encoder.ParseColor(f.Color); err != nil {
			errs = append(errs, fmt.Sprintf("fixture %q: %v", key, err))
		}
		if f.Hash == "" {
			errs = append(errs, fmt.Sprintf("fixture %q: missing hash", key))
			continue
		}

		fullPath := filepath.Join(baseDir, filepath.FromSlash(key))
		file, err := os.Open(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("fixture %q: file not found", key))
			continue
		}
		st, statErr := file.Stat()
		sum, hashErr := hasher.ContentHashReader(file, len(f.Hash))
		file.Close()

		switch {
		case statErr != nil:
			errs = append(errs, fmt.Sprintf("fixture %q: %v", key, statErr))
		case st.Size() != f.Size:
			errs = append(errs, fmt.Sprintf("fixture %q: size mismatch: manifest=%d, disk=%d", key, f.Size, st.Size()))
		case hashErr != nil:
			errs = append(errs, fmt.Sprintf("fixture %q: %v", key, hashErr))
		case sum != f.Hash:
			errs = append(errs, fmt.Sprintf("fixture %q: hash mismatch: manifest=%s, disk=%s", key, f.Hash, sum))
		}
	}

	// Verify stats consistency.
	if m.Stats.TotalFixtures != len(m.Fixtures) {
		errs = append(errs, fmt.Sprintf("stats.total_fixtures mismatch: %d != %d", m.Stats.TotalFixtures, len(m.Fixtures)))
	}
	if m.Stats.TotalBytes != totalBytes {
		errs = append(errs, fmt.Sprintf("stats.total_bytes mismatch: %d != %d", m.Stats.TotalBytes, totalBytes))
	}
	if m.Stats.TotalPixels != totalPixels {
		errs = append(errs, fmt.Sprintf("stats.total_pixels mismatch: %d != %d", m.Stats.TotalPixels, totalPixels))
	}

	return errs
}
