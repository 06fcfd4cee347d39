package cli

import (
	"fmt"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/view"
	"github.com/urfave/cli/v2"
)

// recordFlags maps each form field to its CLI flag. Values are passed to
// the engine as raw strings so the CLI reports the same errors as the form.
var recordFlags = []struct {
	field string
	flag  *cli.StringFlag
}{
	{customer.FieldCreditScore, &cli.StringFlag{Name: "credit-score", Usage: "Credit score (300-850)"}},
	{customer.FieldCountry, &cli.StringFlag{Name: "country", Usage: "Country of residence"}},
	{customer.FieldGender, &cli.StringFlag{Name: "gender", Usage: "Gender [male, female, other]"}},
	{customer.FieldAge, &cli.StringFlag{Name: "age", Usage: "Age in years (18-100)"}},
	{customer.FieldTenure, &cli.StringFlag{Name: "tenure", Usage: "Years as customer (0-50)"}},
	{customer.FieldBalance, &cli.StringFlag{Name: "balance", Usage: "Account balance"}},
	{customer.FieldNumProducts, &cli.StringFlag{Name: "products", Usage: "Number of products used"}},
	{customer.FieldHasCreditCard, &cli.StringFlag{Name: "credit-card", Usage: "Has credit card [yes, no]"}},
	{customer.FieldIsActiveMember, &cli.StringFlag{Name: "active", Usage: "Is active member [yes, no]"}},
	{customer.FieldEstimatedSalary, &cli.StringFlag{Name: "salary", Usage: "Estimated salary"}},
}

var predictCmd = &cli.Command{
	Name:    "predict",
	Aliases: []string{"p"},
	Usage:   "Predict customer exit risk for a single customer",
	UsageText: `churnpulse predict --credit-score 650 --country france --gender female --age 42 \
     --tenure 3 --balance 12500 --products 2 --credit-card yes --active no --salary 55000`,
	HideHelpCommand: true,
	Action:          cmdPredict,
	Flags:           predictFlags(),
}

func predictFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(recordFlags)+2)
	for _, rf := range recordFlags {
		flags = append(flags, rf.flag)
	}
	return append(flags, formatFlag, debugFlag)
}

func inputFromFlags(c *cli.Context) customer.Input {
	in := customer.Input{}
	for _, rf := range recordFlags {
		if c.IsSet(rf.flag.Name) {
			in[rf.field] = c.String(rf.flag.Name)
		}
	}
	return in
}

func cmdPredict(c *cli.Context) error {
	applyFlags(c)
	cfg := getConfig(c)

	sink := engine.SinkFunc(func(m view.Model) error {
		return encode(c.App.Writer, cfg.Format, m)
	})

	s, err := cfg.Engine.NewSession(sink, newTerminalNotifier(c.App.ErrWriter))
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return s.Submit(inputFromFlags(c))
}
