package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/rubric"
	"github.com/tsawler/rubric/format"
	"github.com/tsawler/rubric/internal/worker"
	"github.com/tsawler/rubric/model"
	"github.com/tsawler/rubric/outline"
	"github.com/tsawler/rubric/pdftext"
)

var (
	processOutputDir string
	processRulesFile string
	processWorkers   int
	processMaxPages  int
	processShowPages bool
	processFormat    string
)

var processCmd = &cobra.Command{
	Use:   "process [paths...]",
	Short: "Extract outlines from PDF files or directories",
	Long: `Process runs the outline pipeline over each given PDF. Directory
arguments are expanded to the *.pdf files they contain. Each outline is
written to the output directory under the document's stem, and printed
to stdout as an indented tree.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	RootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVarP(&processOutputDir, "output", "o", "output", "directory for extracted outlines")
	processCmd.Flags().StringVar(&processRulesFile, "rules", "", "YAML rules file with overrides and boilerplate")
	processCmd.Flags().IntVar(&processWorkers, "workers", runtime.NumCPU(), "number of documents processed in parallel")
	processCmd.Flags().IntVar(&processMaxPages, "max-pages", 50, "skip documents with more pages than this (0 = no limit)")
	processCmd.Flags().BoolVar(&processShowPages, "pages", false, "include page numbers in the console tree")
	processCmd.Flags().StringVar(&processFormat, "format", "json", "output format: json, markdown, or html")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	exportFormat, err := outline.ParseExportFormat(processFormat)
	if err != nil {
		return err
	}

	var rules *outline.Rules
	if processRulesFile != "" {
		if rules, err = outline.LoadRules(processRulesFile); err != nil {
			return err
		}
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no PDF files to process")
	}

	if err := os.MkdirAll(processOutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	process := func(_ context.Context, path string) (model.Outline, error) {
		e := rubric.Open(path).WithLogger(log).WithMaxPages(processMaxPages)
		if rules != nil {
			e = e.WithRules(rules)
		}
		return e.Outline()
	}

	start := time.Now()
	pool := worker.New(worker.Config{Workers: processWorkers, Logger: log})
	results := pool.Run(cmd.Context(), paths, process)

	processed, skipped, failed := 0, 0, 0
	for _, r := range results {
		name := filepath.Base(r.Path)
		switch {
		case errors.Is(r.Err, pdftext.ErrTooManyPages):
			skipped++
			log.Warn("document skipped", zap.String("document", name), zap.Error(r.Err))
		case r.Err != nil:
			failed++
			log.Error("document failed", zap.String("document", name), zap.Error(r.Err))
		default:
			if err := writeOutline(r.Path, r.Outline, exportFormat); err != nil {
				failed++
				log.Error("writing outline failed", zap.String("document", name), zap.Error(err))
				continue
			}
			processed++
			log.Info("document processed",
				zap.String("document", name),
				zap.Int("headings", len(r.Outline)),
				zap.Duration("duration", r.Duration))
			printTree(name, r.Outline)
		}
	}

	fmt.Printf("Processed %d of %d documents in %s (%d skipped, %d failed)\n",
		processed, len(paths), time.Since(start).Round(time.Millisecond), skipped, failed)
	return nil
}

// expandPaths resolves the command arguments into a list of PDF files.
// Directory arguments are expanded to the *.pdf files they contain.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			if format.Detect(arg) != format.PDF {
				return nil, fmt.Errorf("%s is not a PDF", arg)
			}
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.pdf"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// writeOutline saves one outline next to the document's stem in the output
// directory.
func writeOutline(srcPath string, ol model.Outline, exportFormat outline.ExportFormat) error {
	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outPath := filepath.Join(processOutputDir, stem+exportFormat.FileExtension())

	config := outline.DefaultExportConfig()
	config.Format = exportFormat
	return outline.NewExporterWithConfig(config).ExportToFile(ol, outPath)
}

// printTree writes the outline as an indented tree on stdout.
func printTree(name string, ol model.Outline) {
	fmt.Printf("%s (%d headings)\n", name, len(ol))
	for _, h := range ol {
		indent := strings.Repeat("  ", int(h.Level)-1)
		if processShowPages {
			fmt.Printf("%s%s (p. %d)\n", indent, h.Text, h.Page)
		} else {
			fmt.Printf("%s%s\n", indent, h.Text)
		}
	}
	fmt.Println()
}
