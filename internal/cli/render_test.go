package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/termdag/pkg/errors"
	"github.com/matzehuels/termdag/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatText, formatDOT, formatSVG} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%s) = %v, want nil", f, err)
		}
	}

	err := validateFormat("pdf")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("validateFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
}

func TestValidatePlacement(t *testing.T) {
	for _, p := range []string{placementBelow, placementAbove} {
		if err := validatePlacement(p); err != nil {
			t.Errorf("validatePlacement(%s) = %v, want nil", p, err)
		}
	}

	err := validatePlacement("sideways")
	if !errors.Is(err, errors.ErrCodeInvalidPlacement) {
		t.Errorf("validatePlacement(sideways) = %v, want INVALID_PLACEMENT", err)
	}
}

func TestBuildConfig(t *testing.T) {
	opts := &renderOpts{
		minWidth:    5,
		hSpacing:    4,
		vSpacing:    3,
		feedback:    placementAbove,
		unicode:     true,
		maxPerLayer: 2,
		reduce:      true,
	}
	cfg := buildConfig(opts)

	if cfg.MinNodeWidth != 5 || cfg.HorizontalSpacing != 4 || cfg.VerticalSpacing != 3 {
		t.Errorf("spacing not applied: %+v", cfg)
	}
	if cfg.FeedbackPlacement != render.PlaceAbove {
		t.Error("feedback placement not applied")
	}
	if cfg.Glyphs != render.UnicodeGlyphs() {
		t.Error("unicode glyphs not applied")
	}
	if cfg.MaxPerLayer != 2 || !cfg.ReduceEdges {
		t.Errorf("layer options not applied: %+v", cfg)
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	content := `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{
			name:   "Text",
			format: formatText,
			want:   []string{" a", " |", " v", " b"},
		},
		{
			name:   "DOT",
			format: formatDOT,
			want:   []string{"digraph G {", `"a" -> "b";`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(dir, "out_"+tt.name)
			opts := &renderOpts{
				output:   output,
				format:   tt.format,
				minWidth: 3,
				hSpacing: 3,
				vSpacing: 2,
				feedback: placementBelow,
			}
			if err := runRender(context.Background(), input, opts); err != nil {
				t.Fatalf("runRender: %v", err)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(data), want) {
					t.Errorf("output missing %q:\n%s", want, data)
				}
			}
		})
	}

	t.Run("MissingInput", func(t *testing.T) {
		opts := &renderOpts{format: formatText, feedback: placementBelow}
		err := runRender(context.Background(), filepath.Join(dir, "absent.json"), opts)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("runRender = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestWriteOutputCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "out.txt")

	if err := writeOutput(path, []byte("x")); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("content = %q, want x", data)
	}
}
