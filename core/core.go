// Package core has core logic for building, classifying, scoring and
// laying out the organization graph.
package core

import (
	"context"
	"path/filepath"
	"time"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/drawio"
	"github.com/orgviz/orgviz/internal/outwriter"
	"github.com/orgviz/orgviz/internal/parquet"
	"github.com/orgviz/orgviz/internal/summarize"
	"github.com/orgviz/orgviz/schema"
)

// ExecutorFunc defines the function signature for executing different run modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) (*Artifacts, error)

// PipelineResult bundles everything the four stages derive from one snapshot.
type PipelineResult struct {
	Graph          *schema.OrgGraph
	Classification *schema.Classification
	Scores         []schema.FragmentationScore
	Layout         *schema.Layout
	Source         string
}

// Artifacts lists the files a run produced, for logging and open hooks.
type Artifacts struct {
	Diagram     string
	FragCSV     string
	FragParquet string
	EpicParquet string
	Synthesis   string
	RunSummary  string
}

// Paths returns the non-empty artifact paths in a stable order.
func (a *Artifacts) Paths() []string {
	var paths []string
	for _, p := range []string{a.Diagram, a.FragCSV, a.Synthesis, a.RunSummary, a.FragParquet, a.EpicParquet} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// RunPipeline loads the snapshot and runs the four derivation stages in
// order. Each stage consumes only the outputs of the previous ones.
func RunPipeline(ctx context.Context, cfg *contract.Config) (*PipelineResult, error) {
	snap, err := LoadSnapshot(ctx, cfg)
	if err != nil {
		return nil, err
	}
	graph, err := BuildGraph(snap, cfg.Mapping, cfg.PI)
	if err != nil {
		return nil, err
	}
	for _, note := range graph.Notes {
		contract.LogWarning(note)
	}
	cls := Classify(graph)
	scores := ComputeFragmentation(graph)
	lay, err := BuildLayout(graph, cls)
	if err != nil {
		return nil, err
	}
	return &PipelineResult{
		Graph:          graph,
		Classification: cls,
		Scores:         scores,
		Layout:         lay,
		Source:         snap.Source,
	}, nil
}

// ExecuteAnalyze runs the pipeline and prints the fragmentation ranking
// to stdout. It serves as the main entry point for the 'analyze' mode.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) (*Artifacts, error) {
	start := time.Now()
	result, err := RunPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ranked := Rank(result.Scores, cfg.ResultLimit)
	duration := time.Since(start)
	return &Artifacts{}, outwriter.PrintFragmentation(ranked, cfg, duration)
}

// ExecuteDiagram runs the pipeline and writes the drawio diagram. Epic
// summaries are filled in before rendering; with the LLM disabled a
// local truncator produces them.
func ExecuteDiagram(ctx context.Context, cfg *contract.Config) (*Artifacts, error) {
	result, err := RunPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := summarize.Fill(ctx, summarize.New(cfg), result.Layout); err != nil {
		return nil, err
	}
	path := filepath.Join(cfg.OutputDir, "org_"+result.Graph.PI+".drawio")
	if err := drawio.WriteDiagram(path, result.Layout); err != nil {
		return nil, err
	}
	contract.LogInfo("diagram written to " + path)
	return &Artifacts{Diagram: path}, nil
}

// ExecuteExport runs the pipeline and writes the tabular artifacts: the
// fragmentation CSV, the parquet exports and the two markdown reports.
func ExecuteExport(ctx context.Context, cfg *contract.Config) (*Artifacts, error) {
	result, err := RunPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return writeExports(result, cfg)
}

// ExecuteFullRun produces every artifact of a planning run: diagram,
// CSV, parquet and markdown reports. It serves as the main entry point
// for the 'full-run' mode.
func ExecuteFullRun(ctx context.Context, cfg *contract.Config) (*Artifacts, error) {
	result, err := RunPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	arts, err := writeExports(result, cfg)
	if err != nil {
		return nil, err
	}
	if err := summarize.Fill(ctx, summarize.New(cfg), result.Layout); err != nil {
		return nil, err
	}
	arts.Diagram = filepath.Join(cfg.OutputDir, "org_"+result.Graph.PI+".drawio")
	if err := drawio.WriteDiagram(arts.Diagram, result.Layout); err != nil {
		return nil, err
	}
	for _, p := range arts.Paths() {
		contract.LogInfo("wrote " + p)
	}
	return arts, nil
}

func writeExports(result *PipelineResult, cfg *contract.Config) (*Artifacts, error) {
	ranked := Rank(result.Scores, 0)
	arts := &Artifacts{
		FragCSV:     filepath.Join(cfg.OutputDir, "fragmentation.csv"),
		FragParquet: filepath.Join(cfg.OutputDir, "fragmentation.parquet"),
		EpicParquet: filepath.Join(cfg.OutputDir, "epics.parquet"),
		Synthesis:   filepath.Join(cfg.OutputDir, "synthesis.md"),
		RunSummary:  filepath.Join(cfg.OutputDir, "run_summary.md"),
	}
	if err := outwriter.WriteFragmentationCSV(arts.FragCSV, ranked, cfg); err != nil {
		return nil, err
	}
	if err := parquet.WriteFragmentation(arts.FragParquet, ranked); err != nil {
		return nil, err
	}
	if err := parquet.WriteEpics(arts.EpicParquet, result.Graph, result.Classification); err != nil {
		return nil, err
	}
	if err := outwriter.WriteSynthesis(arts.Synthesis, ranked, cfg); err != nil {
		return nil, err
	}
	if err := outwriter.WriteRunSummary(arts.RunSummary, result.Graph, result.Classification, result.Source, cfg); err != nil {
		return nil, err
	}
	return arts, nil
}
