// Command wheelctl reports on an option wheel ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wheel"
	"github.com/etnz/wheel/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Load .env file if it exists, WHEEL_* variables override wheel.toml.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
func completion(name string) *complete.Command {
	actions := make(predict.Set, len(wheel.Actions))
	for i, a := range wheel.Actions {
		actions[i] = string(a)
	}
	dates := predict.Set{"-1d", "-1w", "-1m"}
	report := map[string]complete.Predictor{
		"d":       dates,
		"offline": predict.Nothing,
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
		},
		Sub: map[string]*complete.Command{
			"summary": {Flags: report},
			"symbol":  {Flags: map[string]complete.Predictor{"d": dates, "p": predict.Something, "offline": predict.Nothing}},
			"payoff":  {Flags: map[string]complete.Predictor{"low": predict.Something, "high": predict.Something, "step": predict.Something}},
			"tx": {Flags: map[string]complete.Predictor{
				"s":    predict.Something,
				"k":    predict.Set{string(wheel.KindStock), string(wheel.KindOption), string(wheel.KindDividend), string(wheel.KindCapitalFlow)},
				"d":    dates,
				"tail": predict.Something,
			}},
			"add": {Flags: map[string]complete.Predictor{
				"a":      actions,
				"d":      dates,
				"s":      predict.Something,
				"q":      predict.Something,
				"p":      predict.Something,
				"fees":   predict.Something,
				"strike": predict.Something,
				"expiry": predict.Something,
				"m":      predict.Something,
			}},
			"fmt":    {},
			"import": {Args: predict.Files("*.jsonl")},
			"help":   {},
		},
	}
}
