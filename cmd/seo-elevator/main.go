package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/internal/common/logger"
	"github.com/isgo-golgo13/seo-elevator/internal/metrics"
	"github.com/isgo-golgo13/seo-elevator/internal/pipeline"
)

// Exit codes. Usage errors are distinct from runtime failures so scripts can
// tell them apart.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageText = `Usage: seo-elevator <command> [options]

Commands:
  analyze <file>      analyze a document and print findings
  inject  <path>      analyze and inject metadata (file or directory)
  run     <path>      inject and print the Markdown report
  report  <file>      analyze and write the Markdown report

Common options:
  --config FILE       YAML site configuration
  --metrics FILE      write Prometheus metrics after the run
  --verbose           debug logging

Run "seo-elevator <command> -h" for command options.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usageText)
		return exitUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:])
	case "inject":
		return runInject(args[1:], false)
	case "run":
		return runInject(args[1:], true)
	case "report":
		return runReport(args[1:])
	case "-h", "--help", "help":
		fmt.Print(usageText)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, usageText)
		return exitUsage
	}
}

// siteFlags holds the flags shared by inject and run.
type siteFlags struct {
	configPath string
	siteName   string
	siteURL    string
	twitter    string
	image      string
	email      string
	phone      string
	metricsOut string
	verbose    bool
}

func registerSiteFlags(fs *flag.FlagSet, sf *siteFlags) {
	fs.StringVar(&sf.configPath, "config", "", "YAML site configuration file")
	fs.StringVar(&sf.siteName, "site-name", "", "site or brand name")
	fs.StringVar(&sf.siteURL, "site-url", "", "canonical site URL (absolute)")
	fs.StringVar(&sf.twitter, "twitter", "", "twitter handle")
	fs.StringVar(&sf.image, "image", "", "default share image URL (absolute)")
	fs.StringVar(&sf.email, "email", "", "contact email")
	fs.StringVar(&sf.phone, "phone", "", "contact phone")
	fs.StringVar(&sf.metricsOut, "metrics", "", "write Prometheus metrics to FILE after the run")
	fs.BoolVar(&sf.verbose, "verbose", false, "debug logging")
}

// buildConfig loads the YAML file when given, then lets flags override its
// fields, and validates the result.
func (sf *siteFlags) buildConfig() (*config.SeoConfig, error) {
	builder := config.NewBuilder()

	if sf.configPath != "" {
		loaded, err := config.Load(sf.configPath)
		if err != nil {
			return nil, err
		}
		builder.SiteName(loaded.SiteName).
			SiteURL(loaded.SiteURL).
			TwitterHandle(loaded.TwitterHandle).
			DefaultImage(loaded.DefaultImage).
			ContactEmail(loaded.ContactEmail).
			Phone(loaded.Phone).
			Locale(loaded.Locale).
			TitleOverride(loaded.TitleOverride).
			DescriptionOverride(loaded.DescriptionOverride).
			ExtraKeywords(loaded.ExtraKeywords)
		if loaded.Address != nil {
			builder.Address(*loaded.Address)
		}
	}

	if sf.siteName != "" {
		builder.SiteName(sf.siteName)
	}
	if sf.siteURL != "" {
		builder.SiteURL(sf.siteURL)
	}
	if sf.twitter != "" {
		builder.TwitterHandle(sf.twitter)
	}
	if sf.image != "" {
		builder.DefaultImage(sf.image)
	}
	if sf.email != "" {
		builder.ContactEmail(sf.email)
	}
	if sf.phone != "" {
		builder.Phone(sf.phone)
	}

	return builder.Build()
}

// newPipeline builds the pipeline with the collector the flags ask for. The
// returned flush writes the metrics textfile when --metrics is set; callers
// defer it alongside the logger sync.
func newPipeline(sf *siteFlags) (*pipeline.Pipeline, *zap.Logger, func()) {
	log := logger.NewDefault(sf.verbose)

	var collector metrics.Collector = metrics.NewNoop()
	flush := func() {}
	if sf.metricsOut != "" {
		registry := prometheus.NewRegistry()
		collector = metrics.NewPrometheusMetricsWithRegistry("seo_elevator", registry, log)
		flush = func() {
			if err := metrics.WriteTextfile(sf.metricsOut, registry); err != nil {
				fmt.Fprintf(os.Stderr, "write metrics: %v\n", err)
			}
		}
	}
	return pipeline.New(log, collector), log, flush
}

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	var (
		sf     siteFlags
		output string
		format string
	)
	registerSiteFlags(fs, &sf)
	fs.StringVar(&output, "output", "", "write result to file instead of stdout")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "analyze: exactly one input file required")
		return exitUsage
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(os.Stderr, "analyze: unknown format %q\n", format)
		return exitUsage
	}

	p, log, flush := newPipeline(&sf)
	defer log.Sync()
	defer flush()

	markup, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitFailure
	}

	// Analysis works without site identity; the config is optional here.
	var cfg *config.SeoConfig
	if sf.configPath != "" || sf.siteName != "" {
		cfg, err = sf.buildConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
			return exitFailure
		}
	}

	analysis, err := p.Analyze(string(markup), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		return exitFailure
	}

	var rendered string
	if format == "json" {
		b, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
			return exitFailure
		}
		rendered = string(b) + "\n"
	} else {
		rendered = pipeline.RenderReport(analysis, nil)
	}

	return writeOut(output, rendered)
}

func runInject(args []string, withReport bool) int {
	name := "inject"
	if withReport {
		name = "run"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var (
		sf      siteFlags
		output  string
		dryRun  bool
		workers int
	)
	registerSiteFlags(fs, &sf)
	fs.StringVar(&output, "output", "", "output file or directory (default: overwrite input)")
	fs.BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	fs.IntVar(&workers, "workers", 0, "batch worker count (directories only)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s: exactly one input path required\n", name)
		return exitUsage
	}

	cfg, err := sf.buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		return exitFailure
	}

	p, log, flush := newPipeline(&sf)
	defer log.Sync()
	defer flush()

	path := fs.Arg(0)
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stat input: %v\n", err)
		return exitFailure
	}

	if info.IsDir() {
		return injectDir(p, path, cfg, output, workers, dryRun)
	}
	return injectFile(p, path, cfg, output, dryRun, withReport)
}

func injectFile(p *pipeline.Pipeline, path string, cfg *config.SeoConfig, output string, dryRun, withReport bool) int {
	markup, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitFailure
	}

	var (
		outcome *pipeline.Outcome
		report  string
	)
	if withReport {
		outcome, report, err = p.Run(string(markup), cfg)
	} else {
		outcome, err = p.Inject(string(markup), cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "inject: %v\n", err)
		return exitFailure
	}

	for _, warning := range outcome.Log.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if !dryRun {
		dest := path
		if output != "" {
			dest = output
		}
		if err := os.WriteFile(dest, []byte(outcome.HTML), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return exitFailure
		}
	}

	if withReport {
		fmt.Print(report)
	} else {
		fmt.Printf("injected %s: %d applied, %d skipped, %d failed, score %d -> %d\n",
			path, outcome.Log.Applied, outcome.Log.Skipped, outcome.Log.Failed,
			outcome.Analysis.Result.SEOScore, outcome.PostScore)
	}
	return exitOK
}

func injectDir(p *pipeline.Pipeline, dir string, cfg *config.SeoConfig, output string, workers int, dryRun bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.InjectBatch(ctx, dir, cfg, workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch: %v\n", err)
		return exitFailure
	}

	for _, item := range result.Items {
		if item.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", item.Err)
			continue
		}
		if dryRun {
			continue
		}
		dest := item.Path
		if output != "" {
			rel, err := filepath.Rel(dir, item.Path)
			if err != nil {
				rel = filepath.Base(item.Path)
			}
			dest = filepath.Join(output, rel)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "error: create output dir: %v\n", err)
				continue
			}
		}
		if err := os.WriteFile(dest, []byte(item.Outcome.HTML), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: write %s: %v\n", dest, err)
		}
	}

	fmt.Printf("batch: %d succeeded, %d failed\n", result.Succeeded, result.Failed)
	if result.Failed > 0 && result.Succeeded == 0 {
		return exitFailure
	}
	return exitOK
}

func runReport(args []string) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	var (
		sf     siteFlags
		output string
	)
	registerSiteFlags(fs, &sf)
	fs.StringVar(&output, "output", "", "write report to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "report: exactly one input file required")
		return exitUsage
	}

	p, log, flush := newPipeline(&sf)
	defer log.Sync()
	defer flush()

	markup, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return exitFailure
	}

	var cfg *config.SeoConfig
	if sf.configPath != "" || sf.siteName != "" {
		cfg, err = sf.buildConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
			return exitFailure
		}
	}

	report, err := p.Report(string(markup), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		return exitFailure
	}
	return writeOut(output, report)
}

func writeOut(path, content string) int {
	if path == "" {
		fmt.Print(content)
		return exitOK
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return exitFailure
	}
	return exitOK
}
