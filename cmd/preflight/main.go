package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/dataloom/preflight/internal/config"
	"github.com/dataloom/preflight/internal/csvio"
	"github.com/dataloom/preflight/internal/rules"
	"github.com/dataloom/preflight/internal/sheet"
	"github.com/dataloom/preflight/internal/store"
	"github.com/dataloom/preflight/internal/suggest"
	"github.com/dataloom/preflight/internal/validate"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "rules":
		runRules(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "version":
		fmt.Printf("preflight %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`preflight - scheduling-input validation and rule normalization

Usage:
  preflight validate [--config FILE | --clients FILE --tasks FILE --workers FILE] [--format text|json|yaml]
  preflight watch    [--config FILE]
  preflight rules parse "<text>" [--fallback]
  preflight export   [--config FILE] [--rules FILE] [--out FILE]
  preflight version
  preflight help`)
}

// sheetPaths resolves input files from flags or the config file.
func sheetPaths(cfgPath, clients, tasks, workers string) (config.SheetsConfig, string, error) {
	if clients != "" || tasks != "" || workers != "" {
		return config.SheetsConfig{Clients: clients, Tasks: tasks, Workers: workers}, config.DefaultFormat, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.SheetsConfig{}, "", err
	}
	return cfg.Sheets, cfg.Output.Format, nil
}

func loadStore(sheets config.SheetsConfig) (*store.Store, error) {
	s := store.New()
	for _, in := range []struct {
		path string
		typ  sheet.Type
	}{
		{sheets.Clients, sheet.TypeClients},
		{sheets.Tasks, sheet.TypeTasks},
		{sheets.Workers, sheet.TypeWorkers},
	} {
		if in.path == "" {
			continue
		}
		rows, err := csvio.ReadFile(in.path)
		if err != nil {
			return nil, err
		}
		s.ReplaceRows(filepath.Base(in.path), in.typ, rows)
	}
	return s, nil
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "preflight.yaml", "config file")
	clients := fs.String("clients", "", "client sheet file")
	tasks := fs.String("tasks", "", "task sheet file")
	workers := fs.String("workers", "", "worker sheet file")
	format := fs.String("format", "", "output format: text, json or yaml")
	fs.Parse(args)

	sheets, cfgFormat, err := sheetPaths(*cfgPath, *clients, *tasks, *workers)
	if err != nil {
		fatal(err)
	}
	if *format == "" {
		*format = cfgFormat
	}

	s, err := loadStore(sheets)
	if err != nil {
		fatal(err)
	}

	report := s.Report()
	if err := printReport(report, *format); err != nil {
		fatal(err)
	}
	if report.HasErrors() {
		os.Exit(1)
	}
}

func printReport(report validate.Report, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	case "yaml":
		b, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(b))
	case "text", "":
		printTextReport(report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func printTextReport(report validate.Report) {
	names := make([]string, 0, len(report))
	for name := range report {
		names = append(names, name)
	}
	sort.Strings(names)

	total := report.Count()
	if total == 0 {
		fmt.Println("All validations passed.")
		return
	}
	fmt.Printf("%d validation issues found\n", total)
	for _, name := range names {
		issues := report[name]
		if len(issues) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", name)
		groups := validate.Categorize(issues)
		for _, category := range validate.CategoryNames {
			msgs := groups[category]
			if len(msgs) == 0 {
				continue
			}
			fmt.Printf("  %s (%d)\n", category, len(msgs))
			for _, msg := range msgs {
				fmt.Printf("    - %s\n", msg)
			}
		}
	}
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfgPath := fs.String("config", "preflight.yaml", "config file")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	s, err := loadStore(cfg.Sheets)
	if err != nil {
		fatal(err)
	}
	printTextReport(s.Report())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fatal(err)
	}
	defer watcher.Close()

	watched := map[string]sheet.Type{}
	dirs := map[string]bool{}
	for _, in := range []struct {
		path string
		typ  sheet.Type
	}{
		{cfg.Sheets.Clients, sheet.TypeClients},
		{cfg.Sheets.Tasks, sheet.TypeTasks},
		{cfg.Sheets.Workers, sheet.TypeWorkers},
	} {
		if in.path == "" {
			continue
		}
		abs, err := filepath.Abs(in.path)
		if err != nil {
			fatal(err)
		}
		watched[abs] = in.typ
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			fatal(fmt.Errorf("watch %s: %w", dir, err))
		}
	}

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	logger.Printf("watching %d sheet files (debounce %s)", len(watched), debounce)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	var timer *time.Timer
	pending := map[string]sheet.Type{}
	fire := make(chan struct{}, 1)

	for {
		select {
		case event := <-watcher.Events:
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			typ, ok := watched[abs]
			if !ok || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[abs] = typ
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			for path, typ := range pending {
				rows, err := csvio.ReadFile(path)
				if err != nil {
					logger.Printf("reload %s: %v", path, err)
					continue
				}
				s.ReplaceRows(filepath.Base(path), typ, rows)
				logger.Printf("revalidated %s (%d rows)", filepath.Base(path), len(rows))
			}
			pending = map[string]sheet.Type{}
			printTextReport(s.Report())
		case err := <-watcher.Errors:
			logger.Printf("watch error: %v", err)
		case <-sig:
			logger.Printf("shutting down")
			return
		}
	}
}

func runRules(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: preflight rules parse \"<text>\" [--fallback]")
		os.Exit(1)
	}
	switch args[0] {
	case "parse":
		runRulesParse(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown rules subcommand: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "usage: preflight rules parse \"<text>\" [--fallback]")
		os.Exit(1)
	}
}

func runRulesParse(args []string) {
	fs := flag.NewFlagSet("rules parse", flag.ExitOnError)
	fallback := fs.Bool("fallback", false, "degrade to a fallback rule when no pattern matches")

	var text string
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		text = args[0]
		args = args[1:]
	}
	fs.Parse(args)

	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: preflight rules parse \"<text>\" [--fallback]")
		os.Exit(1)
	}

	rule, ok := rules.ParseNaturalRule(text)
	if !ok {
		if !*fallback {
			fmt.Fprintln(os.Stderr, "could not parse rule")
			os.Exit(1)
		}
		rule = rules.NormalizeCandidate(nil)
	}
	if err := rule.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "parsed rule is incomplete: %v\n", err)
		os.Exit(1)
	}

	b, err := json.MarshalIndent(rule, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(b))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "preflight.yaml", "config file")
	rulesPath := fs.String("rules", "", "existing rule document to merge recommendations into")
	out := fs.String("out", "", "output file (default stdout)")
	recommend := fs.Bool("recommend", false, "append co-run rules mined from the client sheet")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	s, err := loadStore(cfg.Sheets)
	if err != nil {
		fatal(err)
	}

	if *rulesPath != "" {
		content, err := os.ReadFile(*rulesPath)
		if err != nil {
			fatal(err)
		}
		doc, err := rules.ParseDocument(content)
		if err != nil {
			fatal(err)
		}
		for _, r := range doc.Rules {
			if err := s.AddRule(r); err != nil {
				fatal(err)
			}
		}
		if len(doc.Weights) > 0 {
			if err := s.ReplaceWeights(doc.Weights); err != nil {
				fatal(err)
			}
		}
	}

	if *recommend {
		clients := s.Rows(filepath.Base(cfg.Sheets.Clients))
		for _, line := range suggest.RuleRecommendations(clients) {
			if r, ok := suggest.CoRunFromRecommendation(line); ok {
				if err := s.AddRule(*r); err != nil {
					fatal(err)
				}
			}
		}
	}

	b, err := s.Export().Marshal()
	if err != nil {
		fatal(err)
	}
	if *out == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(*out, append(b, '\n'), 0o644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
