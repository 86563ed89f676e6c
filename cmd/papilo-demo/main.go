/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/costela/gopapilo"
)

type demoOptions struct {
	debug        bool
	settingsFile string
	params       []string
	lower        float64
	upper        float64
	cost         float64
	integer      bool
	rowLhs       float64
}

var opts = demoOptions{
	lower:   1,
	upper:   10,
	cost:    10,
	integer: true,
	rowLhs:  2.5,
}

var cmd = &cobra.Command{
	Use:   "papilo-demo",
	Short: "Solve a one-variable problem with papilo",
	Long: `Builds the problem

    minimize  cost * x
    s.t.      x >= row-lhs
              lower <= x <= upper

hands it to papilo and prints what comes back. Parameters can be given
with --param key=value or in a YAML file of key: value pairs.`,
	SilenceUsage: true,
	RunE: func(c *cobra.Command, args []string) error {
		return run(opts)
	},
}

func init() {
	addFlags(cmd.Flags(), &opts)
}

func addFlags(flags *pflag.FlagSet, opts *demoOptions) {
	flags.BoolVar(&opts.debug, "debug", opts.debug, "use debug log level")
	flags.StringVar(&opts.settingsFile, "settings", "", "YAML file with parameter settings")
	flags.StringArrayVar(&opts.params, "param", nil, "parameter as key=value; may be repeated")
	flags.Float64Var(&opts.lower, "lower", opts.lower, "lower bound of x")
	flags.Float64Var(&opts.upper, "upper", opts.upper, "upper bound of x")
	flags.Float64Var(&opts.cost, "cost", opts.cost, "objective coefficient of x")
	flags.BoolVar(&opts.integer, "integer", opts.integer, "make x an integer column")
	flags.Float64Var(&opts.rowLhs, "row-lhs", opts.rowLhs, "left-hand side of the row x >= lhs; NaN drops the row")
}

// loadSettings merges the settings file with --param flags, the latter
// taking precedence. Values are typed the way YAML types scalars.
func loadSettings(o demoOptions) (gopapilo.Settings, error) {
	settings := gopapilo.Settings{}

	if o.settingsFile != "" {
		data, err := os.ReadFile(o.settingsFile)
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parsing settings %s: %w", o.settingsFile, err)
		}
	}

	for _, p := range o.params {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed --param %q, expected key=value", p)
		}
		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("parsing --param %q: %w", p, err)
		}
		if value == nil {
			value = ""
		}
		settings[key] = value
	}

	return settings, nil
}

func run(o demoOptions) error {
	logger := logrus.New()
	if o.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	settings, err := loadSettings(o)
	if err != nil {
		return err
	}

	problem, err := gopapilo.NewProblem(gopapilo.WithLogger(logger))
	if err != nil {
		return err
	}
	defer problem.Close()

	x, err := problem.AddColumn(o.lower, o.upper, o.integer, o.cost, "x")
	if err != nil {
		return err
	}
	if !math.IsNaN(o.rowLhs) {
		coefs := []gopapilo.Coefficient{{Column: x, Value: 1}}
		if _, err := problem.AddRow("r1", coefs, o.rowLhs, math.Inf(1)); err != nil {
			return err
		}
	}

	solver, err := gopapilo.NewSolver(gopapilo.WithLogger(logger))
	if err != nil {
		return err
	}
	defer solver.Close()

	if err := solver.LoadProblem(problem); err != nil {
		return err
	}
	if err := gopapilo.ApplySettings(solver, settings); err != nil {
		return err
	}

	info, result, err := solver.Start()
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"result":        result.String(),
		"dualBound":     info.DualBound(),
		"bestObjective": info.BestObjective(),
		"solvingTime":   info.SolvingTime(),
		"presolveTime":  info.PresolveTime(),
	}).Info("solved")

	if sol := info.BestSolution(); sol != nil {
		fmt.Printf("x = %f\n", sol[x])
	}

	return nil
}

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
