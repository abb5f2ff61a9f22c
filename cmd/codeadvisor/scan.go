package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeadvisor/internal/config"
	"codeadvisor/internal/event"
	"codeadvisor/internal/llm"
	"codeadvisor/internal/recommend"
	"codeadvisor/internal/redact"
	"codeadvisor/internal/render"
	"codeadvisor/internal/syntax"
)

type scanFlags struct {
	provider      string
	model         string
	configPath    string
	exclude       []string
	maxRecs       int
	format        string
	out           string
	noAI          bool
	redactEnabled bool
	failOnErrors  bool
	verbose       bool
}

func newScanCmd() *cobra.Command {
	f := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <project-dir>",
		Short: "Analyze a Python project and explain its syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScan(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.provider, "provider", "", "Provider kind: openai, anthropic, or google (default: from config)")
	flags.StringVar(&f.model, "model", "", "Model ID override (e.g., gpt-4o, claude-3-haiku-20240307)")
	flags.StringVar(&f.configPath, "config", "", "Config file path (default: standard locations)")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Extra directory names to exclude (may be repeated)")
	flags.IntVar(&f.maxRecs, "max-recommendations", 0, "Cap provider calls per run (0 = no cap)")
	flags.StringVar(&f.format, "format", "text", "Output format: text, json, or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.BoolVar(&f.noAI, "no-ai", false, "Report detected errors without calling a provider")
	flags.BoolVar(&f.redactEnabled, "redact", true, "Redact secrets in code context before sending to the provider")
	flags.BoolVar(&f.failOnErrors, "fail-on-errors", false, "Exit non-zero when syntax errors are found")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

// scanReport is the JSON output shape.
type scanReport struct {
	Project         string                      `json:"project"`
	FilesScanned    int                         `json:"files_scanned"`
	Errors          []*event.Event              `json:"errors"`
	Recommendations []*recommend.Recommendation `json:"recommendations,omitempty"`
	Provider        string                      `json:"provider,omitempty"`
}

func runScan(projectPath string, f *scanFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	// 1. Configuration
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}

	excluded := cfg.Analysis.ExcludedDirs
	if excluded == nil {
		excluded = syntax.DefaultExcludedDirs
	}
	excluded = append(append([]string{}, excluded...), f.exclude...)

	// 2. Discovery
	analyzer, err := syntax.New(projectPath, excluded)
	if err != nil {
		return exitError(3, "cannot scan project: %v", err)
	}
	analyzer.SetLogger(logger)

	verbose("Scanning %s", analyzer.Root())
	files, err := analyzer.FindSourceFiles()
	if err != nil {
		return exitError(3, "file discovery failed: %v", err)
	}
	if cfg.Analysis.MaxFiles > 0 && len(files) > cfg.Analysis.MaxFiles {
		verbose("Capping scan at %d of %d files", cfg.Analysis.MaxFiles, len(files))
		files = files[:cfg.Analysis.MaxFiles]
	}
	verbose("Analyzing %d files", len(files))

	// 3. Detection
	events := analyzer.AnalyzeFiles(files)
	verbose("Found %d errors", len(events))

	// 4. Recommendations
	var recs []*recommend.Recommendation
	providerLabel := ""
	if !f.noAI && len(events) > 0 {
		provCfg, err := cfg.ProviderConfig(f.provider)
		if err != nil {
			return exitError(4, "provider error: %v", err)
		}
		if f.model != "" {
			provCfg.Model = f.model
		}
		provider, err := llm.New(provCfg)
		if err != nil {
			return exitError(4, "provider error: %v", err)
		}

		worker := recommend.NewWorker(provider)
		info := worker.Info()
		providerLabel = info.Name + "/" + info.Model
		verbose("Using provider %s (max context %d tokens)", providerLabel, info.MaxTokens)

		recs = recommendAll(context.Background(), worker, events, f, logger)
	}

	// 5. Output
	if f.out != "" {
		color.NoColor = true
	}

	output, err := formatReport(analyzer.Root(), len(files), events, recs, providerLabel, f.format)
	if err != nil {
		return err
	}

	if f.out != "" {
		verbose("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Print(output)
	}

	if f.failOnErrors && len(events) > 0 {
		return exitError(2, "found %d syntax errors", len(events))
	}
	return nil
}

// recommendAll drives the worker over each event, skipping items whose
// provider call fails. Failures are reported per-item; the scan
// continues.
func recommendAll(ctx context.Context, worker *recommend.Worker, events []*event.Event, f *scanFlags, logger *log.Logger) []*recommend.Recommendation {
	recs := make([]*recommend.Recommendation, len(events))
	calls := 0
	for i, ev := range events {
		if f.maxRecs > 0 && calls >= f.maxRecs {
			break
		}
		if f.redactEnabled {
			ev.Message = redact.Redact(ev.Message)
			ev.Context = redact.Lines(ev.Context)
		}
		calls++
		rec, err := worker.AnalyzeError(ctx, ev)
		if err != nil {
			logger.Printf("warning: recommendation failed for %s:%d: %v", ev.FilePath, ev.LineNumber, err)
			continue
		}
		recs[i] = rec
	}
	return recs
}

// formatReport renders the scan result in the requested format.
func formatReport(root string, fileCount int, events []*event.Event, recs []*recommend.Recommendation, providerLabel, format string) (string, error) {
	switch format {
	case "text":
		return textReport(fileCount, events, recs), nil
	case "json":
		rep := scanReport{
			Project:         root,
			FilesScanned:    fileCount,
			Errors:          events,
			Recommendations: compactRecs(recs),
			Provider:        providerLabel,
		}
		if rep.Errors == nil {
			rep.Errors = []*event.Event{}
		}
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal output: %w", err)
		}
		return string(data) + "\n", nil
	case "md":
		return render.Markdown(events, recs), nil
	default:
		return "", exitError(3, "unknown format: %s", format)
	}
}

func textReport(fileCount int, events []*event.Event, recs []*recommend.Recommendation) string {
	out := ""
	for i, ev := range events {
		out += render.Event(ev)
		if i < len(recs) && recs[i] != nil {
			out += render.Recommendation(recs[i])
		}
		out += "\n"
	}
	return out + render.Summary(fileCount, len(events)) + "\n"
}

// compactRecs drops the nil placeholders left by failed or capped
// provider calls.
func compactRecs(recs []*recommend.Recommendation) []*recommend.Recommendation {
	var out []*recommend.Recommendation
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
