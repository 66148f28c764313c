package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamusis/orbweight/internal/config"
)

// options holds the parsed command line of one invocation.
type options struct {
	atoms       []int
	element     string
	orbitals    []string
	allAtoms    bool
	allOrbitals bool
	output      string
	configPath  string
	header      string
	verbose     bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "orbweight <out_file> <orb_file>",
		Short: "Sum orbital weights from an unfolding calculation",
		Long: `orbweight reads the orbital table printed in System.Name.out, selects
orbitals by element, atom and orbital type, and sums their weights for every
k-point/energy row of System.Name.unfold_orbup (or unfold_orbdn).

Example:
  orbweight System.out System.unfold_orbup --element Cu --atoms 1 --orbital d`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true, // Execute prints the error
		Version:       version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !opts.verbose {
				return nil
			}
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.SetNormalizeFunc(underscoreFlags)
	f.IntSliceVar(&opts.atoms, "atoms", nil, "Atom numbers to select (e.g. --atoms 1,2). Use with --element")
	f.StringVar(&opts.element, "element", "", "Element symbol (e.g. Cu)")
	f.StringSliceVar(&opts.orbitals, "orbital", nil, "Orbital type(s) or config groups to select (e.g. s,p,d,px,dxy)")
	f.BoolVar(&opts.allAtoms, "all_atoms", false, "Select all atoms of the specified element")
	f.BoolVar(&opts.allOrbitals, "all_orbitals", false, "Select all orbitals of the specified atoms/element")
	f.StringVar(&opts.output, "output", config.DefaultOutput, "Output .dat file name (.gz to compress)")
	f.StringVar(&opts.configPath, "config", "", "Config file (default ~/.orbweight/config.yaml)")
	f.StringVar(&opts.header, "header", "", "Line that precedes the orbital table in out_file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print debug logs to stderr")
	_ = cmd.MarkFlagRequired("element")

	cmd.SetVersionTemplate(versionInfo())
	return cmd
}

// underscoreFlags lets --all-atoms and --all_atoms name the same flag.
func underscoreFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

// Execute is called by main.go.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		var ue *userError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, ue.msg)
		} else {
			printErr("", err.Error())
		}
		os.Exit(1)
	}
}
