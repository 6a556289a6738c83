package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowtune/flowtune/pkg/cache"
	"github.com/flowtune/flowtune/pkg/graphio"
	"github.com/flowtune/flowtune/pkg/workflow"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testWire() graphio.Graph {
	return graphio.Graph{
		Nodes: []graphio.Node{
			{ID: "fetch", Type: workflow.TypeWebhookTrigger, Data: workflow.NodeData{Label: "Fetch"}},
			{ID: "send", Type: workflow.TypeAction, Data: workflow.NodeData{Label: "Send"}},
		},
		Edges: []graphio.Edge{
			{Source: "fetch", Target: "send", Type: workflow.EdgeTypeDefault},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q): %v", f, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("default formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("default logger should be set")
	}
}

func TestOptions_InvalidFormat(t *testing.T) {
	opts := Options{Formats: []string{"bmp"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestExecute_JSONArtifact(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), testWire(), Options{
		Formats: []string{FormatJSON},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}

	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("json artifact missing")
	}
	var payload struct {
		Graph         graphio.Graph     `json:"graph"`
		Optimizations []json.RawMessage `json:"optimizations"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if len(payload.Graph.Nodes) != result.Graph.NodeCount() {
		t.Errorf("artifact has %d nodes, result graph has %d",
			len(payload.Graph.Nodes), result.Graph.NodeCount())
	}
}

func TestExecute_DOTArtifact(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), testWire(), Options{
		Formats: []string{FormatDOT},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"fetch" -> "send"`) {
		t.Errorf("dot artifact missing edge:\n%s", dot)
	}
}

func TestExecute_RecordsReported(t *testing.T) {
	wire := testWire()
	// Two identical actions feeding one target trigger a redundancy removal.
	wire.Nodes = append(wire.Nodes,
		graphio.Node{ID: "send2", Type: workflow.TypeAction, Data: workflow.NodeData{Label: "Send"}})
	wire.Edges = append(wire.Edges,
		graphio.Edge{Source: "fetch", Target: "send2", Type: workflow.EdgeTypeDefault})

	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), wire, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Records) == 0 {
		t.Error("expected optimization records for a graph with duplicates")
	}
	if result.Stats.NodeCount != result.Graph.NodeCount() {
		t.Errorf("stats node count %d != graph node count %d",
			result.Stats.NodeCount, result.Graph.NodeCount())
	}
}

func TestExecute_ResultCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatDOT}, Logger: quietLogger()}

	first, err := r.Execute(ctx, testWire(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.OptimizeHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(ctx, testWire(), Options{Formats: []string{FormatDOT}, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.OptimizeHit {
		t.Error("second run should hit the result cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.GraphHash != first.GraphHash {
		t.Errorf("same input hashed differently: %s vs %s", second.GraphHash, first.GraphHash)
	}
	if second.RunID == first.RunID {
		t.Error("each run should get a fresh RunID")
	}
	if string(second.Artifacts[FormatDOT]) != string(first.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from the rendered one")
	}
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, testWire(), Options{Formats: []string{FormatDOT}, Logger: quietLogger()}); err != nil {
		t.Fatalf("warmup Execute: %v", err)
	}

	refreshed, err := r.Execute(ctx, testWire(), Options{
		Formats: []string{FormatDOT},
		Refresh: true,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.OptimizeHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh run must bypass the cache")
	}
}

func TestExecute_InvalidGraph(t *testing.T) {
	wire := testWire()
	wire.Edges = append(wire.Edges, graphio.Edge{Source: "fetch", Target: "ghost"})

	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), wire, Options{Logger: quietLogger()}); err == nil {
		t.Fatal("expected error for edge to unknown node")
	}
}

func TestNewRunner_NilArguments(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("nil arguments should be replaced with defaults")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
