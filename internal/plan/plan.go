// Package plan loads YAML batch plans describing many fixtures at once.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pngfixture/internal/fixture"
	"gopkg.in/yaml.v2"
)

// Plan is the top-level batch document.
type Plan struct {
	OutDir   string   `yaml:"out_dir"`
	Defaults Defaults `yaml:"defaults"`
	Fixtures []Entry  `yaml:"fixtures"`
}

// Defaults fill in entry fields left empty.
type Defaults struct {
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

// Entry is one fixture in the plan. Out is relative to OutDir unless absolute.
type Entry struct {
	Out    string `yaml:"out"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

// Load reads and parses a plan file. Unknown keys are rejected.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes a plan from YAML bytes.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &p, nil
}

// BaseDir returns the directory outputs are resolved against.
// A non-empty override wins over the plan's out_dir.
func (p *Plan) BaseDir(override string) string {
	switch {
	case override != "":
		return override
	case p.OutDir != "":
		return p.OutDir
	default:
		return "."
	}
}

// Requests expands entries into fixture requests with defaults applied.
func (p *Plan) Requests(outDirOverride string) ([]fixture.Request, error) {
	if len(p.Fixtures) == 0 {
		return nil, errors.New("plan has no fixtures")
	}
	base := p.BaseDir(outDirOverride)

	reqs := make([]fixture.Request, 0, len(p.Fixtures))
	seen := map[string]int{}
	for i, e := range p.Fixtures {
		if e.Out == "" {
			return nil, fmt.Errorf("fixture[%d]: missing out", i)
		}
		out := e.Out
		if !filepath.IsAbs(out) {
			out = filepath.Join(base, out)
		}
		out = filepath.Clean(out)
		if j, dup := seen[out]; dup {
			return nil, fmt.Errorf("fixture[%d]: duplicate out %q (also fixture[%d])", i, out, j)
		}
		seen[out] = i

		req := fixture.Request{
			Out:    out,
			Width:  e.Width,
			Height: e.Height,
			Format: e.Format,
			Color:  e.Color,
		}
		if req.Format == "" {
			req.Format = p.Defaults.Format
		}
		if req.Color == "" {
			req.Color = p.Defaults.Color
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
