package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/zeebo/clingy"
	"github.com/zeebo/errs/v2"
	"golang.org/x/sync/errgroup"

	"loov.dev/tracestats/category"
	"loov.dev/tracestats/import/tef"
	"loov.dev/tracestats/stats"
)

type cmdStats struct {
	format   string
	logLevel string
	parallel int
	traces   []string
}

func (c *cmdStats) Setup(params clingy.Parameters) {
	c.format = params.Flag("format", "output format: json or table", "json").(string)
	c.logLevel = params.Flag("log-level", "logging level", "info").(string)
	c.parallel = params.Flag("parallel", "number of traces analyzed at once", 4,
		clingy.Transform(parsePositive)).(int)
	c.traces = params.Arg("trace", "trace file, JSON or gzipped JSON", clingy.Repeated).([]string)
}

func (c *cmdStats) Execute(ctx clingy.Context) error {
	if err := setupLogging(c.logLevel); err != nil {
		return err
	}
	if len(c.traces) == 0 {
		return errs.Errorf("no trace files specified")
	}
	if c.format != "json" && c.format != "table" {
		return errs.Errorf("unknown format %q", c.format)
	}

	results := make([]stats.Statistics, len(c.traces))

	var group errgroup.Group
	group.SetLimit(c.parallel)
	for i, path := range c.traces {
		i, path := i, path
		group.Go(func() error {
			result, err := analyze(path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	stdout := ctx.Stdout()
	if c.format == "table" {
		return writeTable(stdout, c.traces, results)
	}
	return writeJSON(stdout, c.traces, results)
}

func analyze(path string) (stats.Statistics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errs.Errorf("failed to open trace %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if info, err := file.Stat(); err == nil {
		log.Debugf("Reading %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}

	events, err := tef.Decode(file)
	if err != nil {
		return nil, errs.Errorf("failed to decode trace %q: %w", path, err)
	}

	result, err := stats.Compute(events)
	if err != nil {
		return nil, errs.Errorf("failed to analyze trace %q: %w", path, err)
	}
	return result, nil
}

type traceResult struct {
	Trace      string           `json:"trace"`
	Statistics stats.Statistics `json:"statistics"`
}

// writeJSON writes the bare statistics for a single trace, otherwise one
// entry per trace in argument order.
func writeJSON(w io.Writer, paths []string, results []stats.Statistics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}

	entries := make([]traceResult, len(results))
	for i, path := range paths {
		entries[i] = traceResult{Trace: path, Statistics: results[i]}
	}
	return enc.Encode(entries)
}

func writeTable(w io.Writer, paths []string, results []stats.Statistics) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t\t\n", paths[i])
		if len(result) == 0 {
			fmt.Fprintf(tw, "no main thread tasks\t\t\n")
			continue
		}
		for _, label := range category.Labels {
			ms, ok := result[label]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s ms\t\n", label, humanize.FormatFloat("#,###.##", ms))
		}
	}
	return tw.Flush()
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errs.Errorf("expected a positive number, got %d", n)
	}
	return n, nil
}
