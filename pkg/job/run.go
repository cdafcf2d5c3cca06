package job

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pgoetz/csvclean/pkg/normalize"
	"github.com/pgoetz/csvclean/pkg/region"
	"github.com/pgoetz/csvclean/pkg/table"
)

// Transform applies column rules to an in-memory table, copy-on-write.
// Address rules need a resolver; with resolver nil they are skipped.
func Transform(ctx context.Context, t *table.Table, rules []Rule, numFmt normalize.NumberFormat, defaultRegion string, resolver region.Resolver, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	out := t
	for _, r := range rules {
		if r.Kind == KindAddress {
			if resolver == nil {
				logger.Warn("no region resolver configured, skipping address column", "column", r.Column)
				continue
			}
			out = region.Annotate(ctx, out, r.Column, resolver)
			logger.Info("address column annotated", "column", r.Column)
			continue
		}

		fn, err := normalize.For(r.Kind, numFmt, defaultRegion)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", r.Column, err)
		}
		out = table.Apply(out, []string{r.Column}, fn)
		logger.Info("column normalized", "column", r.Column, "kind", r.Kind)
	}

	if out == t {
		out = t.Clone()
	}
	return out, nil
}

// Run executes a job end to end: read the input file, apply every rule,
// write the output file. An input that cannot be read as delimited text is a
// fatal error for the run.
func Run(ctx context.Context, j *Job, resolver region.Resolver, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	delim, err := j.DelimiterRune()
	if err != nil {
		return err
	}

	in, err := os.Open(j.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	t, err := table.Read(in, table.ReadOptions{Delimiter: delim, Encoding: j.Encoding})
	in.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", j.Input, err)
	}
	logger.Info("input loaded", "file", j.Input, "columns", len(t.Columns), "rows", len(t.Rows))

	out, err := Transform(ctx, t, j.Rules, j.NumberFormat, j.DefaultRegion, resolver, logger)
	if err != nil {
		return err
	}

	f, err := os.Create(j.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := table.Write(f, out, delim); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", j.Output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logger.Info("output written", "file", j.Output, "rows", len(out.Rows))
	return nil
}
