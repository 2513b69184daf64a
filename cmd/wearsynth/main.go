// Command wearsynth generates a synthetic wearable dataset, slices it to a query window and
// writes the result as JSON. A per-day summary table goes to stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/device"
	"github.com/irfndi/wearsynth/internal/logging"
	"github.com/irfndi/wearsynth/internal/models"
	"github.com/irfndi/wearsynth/internal/services"
)

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "wearsynth: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	start      string
	end        string
	seed       int64
	metric     string
	queryStart string
	queryEnd   string
	out        string
	logLevel   string
	noSummary  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("wearsynth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.start, "start", device.DefaultSyntheticStart, "first synthetic day (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", device.DefaultSyntheticEnd, "last synthetic day, inclusive (YYYY-MM-DD)")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed")
	fs.StringVar(&opts.metric, "metric", "", "metric to output; empty outputs every daily metric")
	fs.StringVar(&opts.queryStart, "query-start", device.DefaultQueryStart, "query window start (date or RFC3339)")
	fs.StringVar(&opts.queryEnd, "query-end", device.DefaultQueryEnd, "query window end, exclusive (date or RFC3339)")
	fs.StringVar(&opts.out, "out", "", "output file; stdout when empty")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level for generation logs on stderr")
	fs.BoolVar(&opts.noSummary, "no-summary", false, "skip the summary table")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	params := device.Params{Seed: opts.seed}
	if params.SyntheticStart, err = calendar.ParseDay(opts.start); err != nil {
		return err
	}
	if params.SyntheticEnd, err = calendar.ParseDay(opts.end); err != nil {
		return err
	}
	var query device.Query
	if query.Start, err = calendar.ParseDateTime(opts.queryStart); err != nil {
		return err
	}
	if query.End, err = calendar.ParseDateTime(opts.queryEnd); err != nil {
		return err
	}

	logger := logging.NewLogrusLogger(opts.logLevel, stderr)
	d, err := device.NewFitbitCharge4(device.NameFitbitCharge4, params, services.NewGenerationService(logger, nil), logger)
	if err != nil {
		return err
	}

	result, err := collect(ctx, d, opts.metric, query)
	if err != nil {
		return err
	}

	if opts.out == "" {
		err = writeJSON(stdout, result)
	} else {
		var f *os.File
		if f, err = os.Create(opts.out); err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		err = writeAndClose(f, result)
	}
	if err != nil {
		return err
	}

	if opts.noSummary {
		return nil
	}
	dataset, err := d.Dataset(ctx)
	if err != nil {
		return err
	}
	return writeSummary(stderr, d, dataset, query)
}

func writeJSON(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeAndClose writes result to wc and reports the close error, which is where buffered
// file writes surface.
func writeAndClose(wc io.WriteCloser, result any) error {
	if err := writeJSON(wc, result); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// collect returns one metric, or every daily metric keyed by name.
func collect(ctx context.Context, d *device.FitbitCharge4, metric string, query device.Query) (any, error) {
	if metric != "" {
		return d.Get(ctx, metric, query)
	}

	all := make(map[string]any, len(models.DailyMetrics))
	for _, m := range models.DailyMetrics {
		data, err := d.Get(ctx, m, query)
		if err != nil {
			return nil, err
		}
		all[m] = data
	}
	return all, nil
}

var summaryColumns = []string{"date", "deep", "light", "rem", "wake", "time in bed", "steps", "sedentary"}

// writeSummary prints one row per queried day: sleep minutes per stage, steps and
// sedentary minutes.
func writeSummary(w io.Writer, d *device.FitbitCharge4, dataset *models.SyntheticDataset, query device.Query) error {
	sleepAny, err := device.Slice(d.Span(), dataset, models.MetricSleep, query)
	if err != nil {
		return err
	}
	stepsAny, err := device.Slice(d.Span(), dataset, models.MetricSteps, query)
	if err != nil {
		return err
	}
	sedentaryAny, err := device.Slice(d.Span(), dataset, models.MetricMinutesSedentary, query)
	if err != nil {
		return err
	}
	sleep := sleepAny.([]models.SleepRecord)
	steps := stepsAny.([]models.DailyValue[int])
	sedentary := sedentaryAny.([]models.DailyValue[int])

	title := cases.Title(language.English)
	headers := make([]string, len(summaryColumns))
	for i, col := range summaryColumns {
		headers[i] = title.String(col)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
	for i := range sleep {
		s := sleep[i].Levels.Summary
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			steps[i].DateTime, s.Deep.Minutes, s.Light.Minutes, s.Rem.Minutes, s.Wake.Minutes,
			sleep[i].TimeInBed, steps[i].Value, sedentary[i].Value)
	}
	return tw.Flush()
}
