package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jpleunes/rcpsptexact/internal/engine"
	"github.com/jpleunes/rcpsptexact/internal/instance"
	"github.com/jpleunes/rcpsptexact/internal/problem"
)

func main() {
	root := &cobra.Command{
		Use:           "rcpsptexact",
		Short:         "exact solver for the resource-constrained project scheduling problem with time-dependent resources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	smtCmd := &cobra.Command{
		Use:   "smt <instance-file>",
		Short: "solve an instance via the SMT/IDL path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], func(inst *problem.Instance) *problem.Measurements {
				return engine.SolveSMT(inst, args[0])
			})
		},
	}

	satCmd := &cobra.Command{
		Use:   "sat <instance-file>",
		Short: "solve an instance via the SAT path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], func(inst *problem.Instance) *problem.Measurements {
				return engine.SolveSAT(inst, args[0])
			})
		},
	}

	maxsatCmd := &cobra.Command{
		Use:   "maxsat <instance-file> <out-file>",
		Short: "encode an instance to a WCNF file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("could not create %q: %v", args[1], err)
			}
			defer out.Close()
			elapsed, err := engine.EncodeMaxSAT(inst, out)
			if err != nil {
				return fmt.Errorf("could not encode %q: %v", args[0], err)
			}
			fmt.Println(elapsed.Milliseconds())
			return nil
		},
	}

	mod2solCmd := &cobra.Command{
		Use:   "mod2sol <instance-file> <model-file>",
		Short: "reverse-map a MaxSAT model to a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			model, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("could not read %q: %v", args[1], err)
			}
			fmt.Println(engine.DecodeMaxSAT(inst, args[0], string(model)))
			return nil
		},
	}

	root.AddCommand(smtCmd, satCmd, maxsatCmd, mod2solCmd)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func loadInstance(path string) (*problem.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %v", path, err)
	}
	defer f.Close()
	inst, err := instance.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %v", path, err)
	}
	return inst, nil
}

func runSolve(path string, solve func(*problem.Instance) *problem.Measurements) error {
	inst, err := loadInstance(path)
	if err != nil {
		return err
	}
	m := solve(inst)
	fmt.Println(engine.ResultLineChecked(m, inst))
	return nil
}
