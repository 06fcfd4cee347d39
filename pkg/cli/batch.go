package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/view"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	batchFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "YAML or JSON file with a list of customer records",
		Required: true,
	}

	concurrencyFlag = &cli.IntFlag{
		Name:  "concurrency",
		Usage: "Number of records scored in parallel (default: from config)",
	}

	batchCmd = &cli.Command{
		Name:    "batch",
		Aliases: []string{"b"},
		Usage:   "Predict customer exit risk for every record in a file",
		UsageText: `churnpulse batch --file customers.yaml                 # score all records
   churnpulse batch --file customers.json --format yaml   # print results as YAML`,
		HideHelpCommand: true,
		Action:          cmdBatch,
		Flags: []cli.Flag{
			batchFileFlag,
			concurrencyFlag,
			formatFlag,
			debugFlag,
		},
	}
)

// BatchItem is the outcome of a single record in a batch.
type BatchItem struct {
	Index      int                       `json:"index" yaml:"index"`
	Prediction *view.Model               `json:"prediction,omitempty" yaml:"prediction,omitempty"`
	Error      *customer.ValidationError `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Total    int         `json:"total" yaml:"total"`
	Valid    int         `json:"valid" yaml:"valid"`
	Invalid  int         `json:"invalid" yaml:"invalid"`
	Duration string      `json:"duration" yaml:"duration"`
	Items    []BatchItem `json:"items" yaml:"items"`
}

func cmdBatch(c *cli.Context) error {
	applyFlags(c)
	cfg := getConfig(c)

	path := c.String(batchFileFlag.Name)
	if path == "" {
		return fmt.Errorf("%w: file required", errInvalidArgs)
	}

	inputs, err := readInputs(path)
	if err != nil {
		return err
	}

	limit := cfg.Config.Concurrency
	if n := c.Int(concurrencyFlag.Name); n > 0 {
		limit = n
	}

	res, err := scoreAll(c, cfg.Engine, inputs, limit)
	if err != nil {
		return err
	}

	if err := encode(c.App.Writer, cfg.Format, res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func scoreAll(c *cli.Context, eng *engine.Engine, inputs []customer.Input, limit int) (*BatchResult, error) {
	start := time.Now()
	items := make([]BatchItem, len(inputs))

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(limit)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := BatchItem{Index: i}
			m, err := eng.Evaluate(in)
			if err != nil {
				ve, ok := customer.AsValidationError(err)
				if !ok {
					return fmt.Errorf("record %d: %w", i, err)
				}
				item.Error = ve
			} else {
				item.Prediction = &m
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring records: %w", err)
	}

	res := &BatchResult{Total: len(items), Items: items}
	for _, it := range items {
		if it.Error != nil {
			res.Invalid++
		} else {
			res.Valid++
		}
	}
	res.Duration = time.Since(start).String()

	slog.Debug("batch scored", "total", res.Total, "valid", res.Valid, "invalid", res.Invalid)
	return res, nil
}

// readInputs loads a list of records. JSON is read by the YAML decoder.
func readInputs(path string) ([]customer.Input, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var docs []map[string]any
	if err := yaml.Unmarshal(b, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	list := make([]customer.Input, 0, len(docs))
	for _, d := range docs {
		list = append(list, toInput(d))
	}
	return list, nil
}

// toInput converts decoded YAML or JSON values to raw form strings.
func toInput(doc map[string]any) customer.Input {
	in := customer.Input{}
	for _, f := range customer.Fields {
		v, ok := doc[f]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			in[f] = t
		case float64:
			in[f] = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			in[f] = strconv.Itoa(t)
		case bool:
			in[f] = strconv.FormatBool(t)
		default:
			in[f] = fmt.Sprint(t)
		}
	}
	return in
}
