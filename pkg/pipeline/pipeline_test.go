package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

const fixtureJSON = `{
  "nodes": [
    {"id": "geometry", "type": "geometry", "title": "Geometry"},
    {"id": "seismic", "type": "seismic", "depends_on": [{"node_id": "geometry", "kind": "default"}]},
    {"id": "wind", "type": "wind", "depends_on": [{"node_id": "geometry", "kind": "default"}]},
    {"id": "structural", "type": "structural", "depends_on": [
      {"node_id": "seismic", "kind": "default"},
      {"node_id": "wind", "kind": "default"}
    ]}
  ]
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Source:  writeFixture(t, "bridge.json", fixtureJSON),
		Width:   1000,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 4 {
		t.Errorf("EdgeCount = %d, want 4", result.Stats.EdgeCount)
	}
	if result.WorkflowHash == "" {
		t.Error("WorkflowHash should be set")
	}
	if len(result.Positions) != 4 {
		t.Errorf("Positions count = %d, want 4", len(result.Positions))
	}
	for _, format := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), `id="node-structural"`) {
		t.Error("svg artifact should contain the structural node")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph workflow {") {
		t.Error("dot artifact should be a digraph")
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Source:  writeFixture(t, "bridge.json", fixtureJSON),
		Width:   1000,
		Formats: []string{FormatSVG},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() second run error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the original render")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() refresh error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestExecutePins(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Source: writeFixture(t, "bridge.json", fixtureJSON),
		Width:  1000,
		Pins:   map[string]layout.Position{"wind": {X: 42, Y: 420}},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := result.Positions["wind"]; got != (layout.Position{X: 42, Y: 420}) {
		t.Errorf("pinned position = %+v, want {42 420}", got)
	}
}

func TestExecutePinWithReset(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// The reset discards earlier placements; pins in the same request are
	// new placements and must still land.
	result, err := runner.Execute(context.Background(), Options{
		Source:      writeFixture(t, "bridge.json", fixtureJSON),
		Width:       1000,
		Pins:        map[string]layout.Position{"wind": {X: 42, Y: 420}},
		ResetPinned: true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := result.Positions["wind"]; got != (layout.Position{X: 42, Y: 420}) {
		t.Errorf("pinned position = %+v, want {42 420}", got)
	}
}

func TestExecuteCachedLayoutHonorsPins(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Source: writeFixture(t, "bridge.json", fixtureJSON),
		Width:  1000,
		Pins:   map[string]layout.Position{"wind": {X: 42, Y: 420}},
	}

	// A reset run and a plain run with the same pins share one cache entry,
	// so the entry must carry the pinned placement.
	opts.ResetPinned = true
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() reset run error: %v", err)
	}

	opts.ResetPinned = false
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if got := second.Positions["wind"]; got != (layout.Position{X: 42, Y: 420}) {
		t.Errorf("pinned position = %+v, want {42 420}", got)
	}
}

func TestExecuteMissingSource(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Source: "no-such-file.json"})
	if err == nil {
		t.Fatal("Execute() should fail for a missing source")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestExecuteCycle(t *testing.T) {
	cyclic := `{
  "nodes": [
    {"id": "a", "depends_on": [{"node_id": "b", "kind": "default"}]},
    {"id": "b", "depends_on": [{"node_id": "a", "kind": "default"}]}
  ]
}`
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Source: writeFixture(t, "cyclic.json", cyclic),
	})
	if err == nil {
		t.Fatal("Execute() should fail for a cyclic workflow")
	}
	if errors.GetCode(err) != errors.ErrCodeCycle {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeCycle)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{FormatSVG, FormatHTML, FormatDOT, FormatPNG, FormatJSON}); err != nil {
		t.Errorf("ValidateFormats() error: %v", err)
	}
	err := ValidateFormats([]string{"gif"})
	if err == nil {
		t.Fatal("ValidateFormats() should reject unknown formats")
	}
	var coded *errors.Error
	if !stderrors.As(err, &coded) || coded.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	if err := (&Options{}).ValidateAndSetDefaults(); err == nil {
		t.Error("empty source should be rejected")
	}
}
