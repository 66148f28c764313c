package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/orbweight/internal/config"
	"github.com/kamusis/orbweight/internal/datafile"
	"github.com/kamusis/orbweight/internal/orbital"
	"github.com/kamusis/orbweight/internal/weights"
)

// userError is an abort whose text is shown to the user verbatim.
type userError struct{ msg string }

func (e *userError) Error() string { return e.msg }

func abortf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

func runAnalyze(cmd *cobra.Command, opts *options, outFile, orbFile string) error {
	log := opts.logger

	criteria := orbital.Criteria{
		Element:     opts.element,
		Atoms:       opts.atoms,
		AllAtoms:    opts.allAtoms,
		Orbitals:    opts.orbitals,
		AllOrbitals: opts.allOrbitals,
	}
	if err := criteria.Validate(); err != nil {
		switch {
		case errors.Is(err, orbital.ErrNoOrbitalSelection):
			return abortf("Error: Either specify --orbital or use --all_orbitals to select all orbitals.")
		case errors.Is(err, orbital.ErrNoAtomSelection):
			return abortf("Error: Either specify --atoms or use --all_atoms to select all atoms of the element.")
		}
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	criteria.Orbitals = cfg.ExpandOrbitals(criteria.Orbitals)
	header := opts.header
	if header == "" {
		header = cfg.Header
	}
	outPath, err := config.ResolveOutput(opts.output, cmd.Flags().Changed("output"), cfg)
	if err != nil {
		return err
	}

	descs, err := orbital.ParseFile(outFile, header)
	if err != nil {
		return err
	}
	log.Debug("Parsed orbital table", zap.String("path", outFile), zap.Int("orbitals", len(descs)))

	indices, err := orbital.Resolve(descs, criteria)
	switch {
	case errors.Is(err, orbital.ErrNoAtoms):
		return abortf("No atoms found for element %s.", criteria.Element)
	case errors.Is(err, orbital.ErrNoOrbitals):
		return abortf("No orbitals matched the criteria.")
	case err != nil:
		return err
	}
	for _, d := range orbital.Selected(descs, indices) {
		log.Debug("Selected orbital",
			zap.Int("index", d.Index),
			zap.Int("atom", d.AtomNumber),
			zap.String("element", d.Element),
			zap.String("n", d.N),
			zap.String("type", d.OrbitalType))
	}

	st, err := writeWeights(orbFile, outPath, indices)
	if err != nil {
		return err
	}
	log.Debug("Wrote weight sums", zap.String("path", outPath), zap.Int("rows", st.Rows), zap.Int("skipped", st.Skipped))

	printOK("", fmt.Sprintf("Results written to %s", outPath))
	return nil
}

// writeWeights sums the selected columns of orbFile into outPath. The output
// is only truncated once orbFile has been opened.
func writeWeights(orbFile, outPath string, indices []int) (weights.Stats, error) {
	in, err := datafile.Open(orbFile)
	if err != nil {
		return weights.Stats{}, err
	}
	defer in.Close()

	out, err := datafile.Create(outPath, datafile.DefaultLockTimeout)
	if err != nil {
		return weights.Stats{}, err
	}
	st, err := weights.Aggregate(in, out, indices)
	if err != nil {
		_ = out.Close()
		return st, fmt.Errorf("cannot process %s: %w", orbFile, err)
	}
	if err := out.Close(); err != nil {
		return st, err
	}
	return st, nil
}

// loadConfig reads the config file named by the flag, ORBWEIGHT_CONFIG, or
// the default location, in that order.
func loadConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		v, err := config.GetConfigValue(config.EnvConfig)
		if err != nil {
			return nil, err
		}
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}
