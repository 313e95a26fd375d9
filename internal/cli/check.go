package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/vipcheck/internal/check"
	"github.com/aidanlsb/vipcheck/internal/config"
	"github.com/aidanlsb/vipcheck/internal/filecheck"
	"github.com/aidanlsb/vipcheck/internal/logging"
	"github.com/aidanlsb/vipcheck/internal/registry"
	"github.com/aidanlsb/vipcheck/internal/report"
	"github.com/aidanlsb/vipcheck/internal/sheet"
	"github.com/aidanlsb/vipcheck/internal/ui"
)

var (
	checkRunMode          runModeValue
	checkInfile           string
	checkOutdir           string
	checkPrintValues      bool
	checkShowInfo         bool
	checkFormat           formatValue
	checkStrict           bool
	checkRegistryFile     string
	checkNoTrios          bool
	checkSheetConsistency bool
)

var checkCmd = &cobra.Command{
	Use:   "check [samplesheet...]",
	Short: "Check samplesheets for a run mode",
	Long: `Checks every row of the given samplesheets for the run mode and prints a
table marking each cell, followed by the problems found per sample.

Sheets are either given as arguments together with --runmode, or listed in
an infile with one "runmode<TAB>sheet1,sheet2" line per run mode.

The exit status is 1 when any sheet has errors or could not be read.`,
	Example: `  vipcheck check -r cram samples.tsv
  vipcheck check -i sheets.txt -o reports/ --show-info`,
	RunE: runCheckCmd,
}

// checkJob is a run mode and the sheets to check for it.
type checkJob struct {
	Mode   registry.RunMode
	Sheets []string
}

// checkSettings merges flags and config for one invocation.
type checkSettings struct {
	outdir   string
	format   string
	report   report.Options
	strict   bool
	checks   check.Options
	registry string
	s3       filecheck.S3Config
}

// sheetResult is the outcome for one sheet.
type sheetResult struct {
	Sheet   string         `json:"sheet"`
	RunMode string         `json:"runmode"`
	Report  *report.Report `json:"report,omitempty"`
	Output  string         `json:"output,omitempty"`
	Error   string         `json:"error,omitempty"`
	Failed  bool           `json:"failed"`
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c := getConfig()

	mode := checkRunMode.mode
	if !cmd.Flags().Changed("runmode") {
		mode = ""
	}
	jobs, err := checkJobs(checkInfile, mode, c.RunMode, args)
	if err != nil {
		return handleError(ErrInvalidInput, err, "Run 'vipcheck check --help' for usage")
	}

	settings := newCheckSettings(cmd.Flags(), c)
	reg, err := loadRegistry(settings.registry)
	if err != nil {
		return handleError(ErrRegistryInvalid, err, "")
	}

	runner := &checkRunner{
		reg:      reg,
		oracle:   filecheck.Router{Local: filecheck.Local{}, S3: filecheck.NewS3(settings.s3)},
		settings: settings,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		display:  ui.NewDisplayContext(os.Stdout),
	}
	results := runner.run(cmd.Context(), jobs)

	failed := 0
	for _, res := range results {
		if res.Failed {
			failed++
		}
	}

	if isJSONOutput() {
		writeCheckJSON(results, time.Since(start))
	} else if len(results) > 1 {
		fmt.Println(ui.Header(fmt.Sprintf("Checked %d samplesheets, %d failed", len(results), failed)))
	}

	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if failed > 0 {
		return errSilent
	}
	return nil
}

// checkJobs works out which sheets to check for which run mode. modeFlag is
// empty when --runmode was not given; configMode is the configured default.
func checkJobs(infile string, modeFlag registry.RunMode, configMode string, args []string) ([]checkJob, error) {
	if infile != "" {
		if len(args) > 0 {
			return nil, errors.New("give samplesheets either as arguments or with --infile, not both")
		}
		f, err := os.Open(infile)
		if err != nil {
			return nil, fmt.Errorf("open infile: %w", err)
		}
		defer f.Close()
		return readInfile(f)
	}

	if len(args) == 0 {
		return nil, errors.New("no samplesheets given")
	}
	mode := modeFlag
	if mode == "" {
		if strings.TrimSpace(configMode) == "" {
			return nil, errors.New("no runmode given: use --runmode or set runmode in the config file")
		}
		m, err := registry.ParseRunMode(configMode)
		if err != nil {
			return nil, fmt.Errorf("config runmode: %w", err)
		}
		mode = m
	}
	return []checkJob{{Mode: mode, Sheets: args}}, nil
}

// readInfile parses "runmode<TAB>sheet1,sheet2" lines. Blank lines and lines
// starting with # are ignored. Lines for a run mode seen before extend its
// job.
func readInfile(r io.Reader) ([]checkJob, error) {
	var jobs []checkJob
	index := make(map[registry.RunMode]int)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("infile line %d: expected runmode<TAB>samplesheets", lineNo)
		}
		mode, err := registry.ParseRunMode(fields[0])
		if err != nil {
			return nil, fmt.Errorf("infile line %d: %w", lineNo, err)
		}
		var sheets []string
		for _, p := range strings.Split(fields[1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				sheets = append(sheets, p)
			}
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("infile line %d: no samplesheets listed", lineNo)
		}

		if i, ok := index[mode]; ok {
			jobs[i].Sheets = append(jobs[i].Sheets, sheets...)
			continue
		}
		index[mode] = len(jobs)
		jobs = append(jobs, checkJob{Mode: mode, Sheets: sheets})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read infile: %w", err)
	}
	if len(jobs) == 0 {
		return nil, errors.New("infile lists no samplesheets")
	}
	return jobs, nil
}

func newCheckSettings(flags *pflag.FlagSet, c *config.Config) checkSettings {
	s := checkSettings{
		outdir: checkOutdir,
		format: checkFormat.String(),
		report: report.Options{
			PrintValues: boolSetting(flags, "print-values", checkPrintValues, c.PrintValues),
			ShowInfo:    boolSetting(flags, "show-info", checkShowInfo, c.ShowInfo),
		},
		strict: boolSetting(flags, "strict", checkStrict, c.Strict),
		checks: check.Options{
			Trios:                c.Checks.TriosEnabled() && !checkNoTrios,
			SheetWideConsistency: boolSetting(flags, "sheet-consistency", checkSheetConsistency, c.Checks.SheetConsistencyEnabled()),
		},
		registry: c.RegistryFile,
		s3: filecheck.S3Config{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			Profile:         c.S3.Profile,
			PathStyle:       c.S3.PathStyle,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			SessionToken:    c.S3.SessionToken,
		},
	}
	if checkRegistryFile != "" {
		s.registry = checkRegistryFile
	}
	return s
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Load()
	}
	return registry.LoadFile(path)
}

// checkRunner checks sheets one after another and prints each report as
// soon as it is done.
type checkRunner struct {
	reg      *registry.Registry
	oracle   filecheck.Oracle
	settings checkSettings
	stdout   io.Writer
	stderr   io.Writer
	display  *ui.DisplayContext
}

func (r *checkRunner) run(ctx context.Context, jobs []checkJob) []sheetResult {
	total := 0
	for _, job := range jobs {
		total += len(job.Sheets)
	}
	progress := ui.NewProgress(r.stderr, "Checking samplesheets", total)

	results := make([]sheetResult, 0, total)
	for _, job := range jobs {
		v := check.NewValidator(r.reg, job.Mode, r.oracle, r.settings.checks)
		for _, path := range job.Sheets {
			if ctx.Err() != nil {
				return results
			}
			progress.Increment()
			res := r.checkSheet(ctx, v, path)
			progress.Done()
			r.print(res)
			results = append(results, res)
		}
	}
	return results
}

func (r *checkRunner) checkSheet(ctx context.Context, v *check.Validator, path string) sheetResult {
	log := logging.ForSheet(path)
	res := sheetResult{Sheet: path, RunMode: string(v.Mode())}

	s, err := sheet.Read(path)
	if err != nil {
		log.Error("skipping samplesheet", "error", err)
		res.Error = err.Error()
		res.Failed = true
		return res
	}

	v.Validate(ctx, s)
	for _, is := range check.Issues(s, true) {
		log.Debug("issue", "level", is.Level.String(), "line", is.Line, "column", is.Column, "message", is.Message)
	}
	rep := report.Build(s, v.Mode(), r.settings.report)
	res.Report = rep
	res.Failed = rep.Failed(r.settings.strict)

	if r.settings.outdir != "" {
		out, err := report.WriteFile(r.settings.outdir, rep)
		if err != nil {
			log.Error("could not write report", "error", err)
			res.Error = err.Error()
			res.Failed = true
		} else {
			log.Info("wrote report", "output", out)
			res.Output = out
		}
	}
	return res
}

func (r *checkRunner) print(res sheetResult) {
	if isJSONOutput() {
		return
	}
	if res.Report == nil {
		fmt.Fprintln(r.stderr, ui.Errorf("Skipping samplesheet %s: %s", res.Sheet, res.Error))
		return
	}

	switch r.settings.format {
	case formatMarkdown:
		md := res.Report.Markdown()
		if r.display.IsTTY {
			rendered, err := ui.RenderMarkdown(md, r.display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				slog.Warn("could not render markdown", "error", err)
			} else {
				md = rendered
			}
		}
		fmt.Fprint(r.stdout, md)
	default:
		fmt.Fprint(r.stdout, res.Report.Text(r.display.IsTTY))
	}

	if res.Output != "" {
		fmt.Fprintf(r.stdout, "%s %s\n", ui.Hint("Wrote output file with checks to:"), ui.FilePath(res.Output))
	}
	if res.Error != "" {
		fmt.Fprintln(r.stderr, ui.Error(res.Error))
	}
	fmt.Fprintln(r.stdout)
}

func writeCheckJSON(results []sheetResult, elapsed time.Duration) {
	var warnings []Warning
	ok := true
	for _, res := range results {
		if res.Failed {
			ok = false
		}
		switch {
		case res.Report == nil:
			warnings = append(warnings, Warning{Code: WarnSheetSkipped, Message: res.Error, Sheet: res.Sheet})
		case res.Error != "":
			warnings = append(warnings, Warning{Code: WarnReportFailed, Message: res.Error, Sheet: res.Sheet})
		}
	}
	outputJSON(Response{
		OK:       ok,
		Data:     map[string]interface{}{"sheets": results},
		Warnings: warnings,
		Meta:     &Meta{Count: len(results), ElapsedMs: elapsed.Milliseconds()},
	})
}

func init() {
	checkCmd.Flags().VarP(&checkRunMode, "runmode", "r", "Run mode to check for: fastq, cram, gvcf or vcf")
	checkCmd.Flags().StringVarP(&checkInfile, "infile", "i", "", "File listing runmode<TAB>samplesheets per line")
	checkCmd.Flags().StringVarP(&checkOutdir, "outdir", "o", "", "Directory to write checked_<sheet>.txt reports to")
	checkCmd.Flags().BoolVarP(&checkPrintValues, "print-values", "p", false, "Show cell values in the report table")
	checkCmd.Flags().BoolVarP(&checkShowInfo, "show-info", "n", false, "Show informational messages")
	checkCmd.Flags().Var(&checkFormat, "format", "Report format: text or markdown")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail on warnings (and shown infos) too")
	checkCmd.Flags().StringVar(&checkRegistryFile, "registry", "", "Column registry YAML replacing the built-in one")
	checkCmd.Flags().BoolVar(&checkNoTrios, "no-trios", false, "Do not require families to be trios")
	checkCmd.Flags().BoolVar(&checkSheetConsistency, "sheet-consistency", false, "Also require sequencing settings to agree across projects")
	rootCmd.AddCommand(checkCmd)
}
