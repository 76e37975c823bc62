package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tuneinsight/legendre/legendre"
	"github.com/tuneinsight/legendre/projection"
	"github.com/tuneinsight/legendre/quadrature"
	"github.com/tuneinsight/legendre/utils"
	"github.com/tuneinsight/legendre/utils/sampling"
)

// demoFunctions are projected by the root command.
var demoFunctions = []string{"sin", "expsqrt"}

func newRootCmd() *cobra.Command {

	cfg := DefaultConfig()
	var configPath string

	// Bases are shared between the functions projected in one run.
	cache := legendre.NewCache()

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Orthogonal Legendre polynomial approximation of scalar functions",
		Version: version,
		Long: `legendre builds an orthonormal polynomial basis on [a, b] by Gram-Schmidt orthogonalization
of the monomials under a composite Simpson inner product, and projects functions onto it.

Without subcommand, it projects sin(x) and exp(sqrt(|x/7|)) onto 11 functions on [-pi, pi].`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if err = applyConfigFile(cmd, configPath, &cfg); err != nil {
				return
			}
			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Debug().Str("params", fmt.Sprintf("%+v", cfg)).Msg("configuration loaded")
			return
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range demoFunctions {
				run := cfg
				run.Function = name
				if err := runProject(cmd.OutOrStdout(), cache, run); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file; explicit flags take precedence")
	flags.VarP(newRealValue(cfg.A, &cfg.A), "lower", "a", "lower bound of the interval (accepts multiples of pi, e.g. -pi)")
	flags.VarP(newRealValue(cfg.B, &cfg.B), "upper", "b", "upper bound of the interval (accepts multiples of pi, e.g. 2pi)")
	flags.IntVarP(&cfg.N, "resolution", "n", cfg.N, "number of Simpson subintervals (even, >= 2)")
	flags.IntVarP(&cfg.Count, "count", "c", cfg.Count, "number of basis functions")
	flags.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "relative residual norm in (0, 1) under which the basis is degenerate (0 for the default)")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	rootCmd.AddCommand(
		newIntegrateCmd(&cfg),
		newBasisCmd(&cfg),
		newProjectCmd(&cfg, cache),
	)

	return rootCmd
}

func newIntegrateCmd(cfg *Config) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate a function on [a, b] with the composite Simpson rule",
		RunE: func(cmd *cobra.Command, args []string) error {

			f, err := getFunction(cfg.Function)
			if err != nil {
				return err
			}

			res, err := quadrature.Integrate(cfg.A, cfg.B, f, cfg.N)
			if err != nil {
				return err
			}

			log.Debug().Str("func", cfg.Function).Float64("a", cfg.A).Float64("b", cfg.B).Int("n", cfg.N).Msg("integrated")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "∫ %s dx on [%v, %v] (N=%d) = %.17g\n", cfg.Function, cfg.A, cfg.B, cfg.N, res)
			return err
		},
	}

	cmd.Flags().StringVarP(&cfg.Function, "func", "f", cfg.Function, "function to integrate")

	return cmd
}

func newBasisCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "basis",
		Short: "Build the orthonormal basis and print the monomial coefficients of its polynomials",
		RunE: func(cmd *cobra.Command, args []string) error {

			params, err := legendre.NewParametersFromLiteral(cfg.ParametersLiteral)
			if err != nil {
				return err
			}

			basis, err := legendre.NewBasis(params)
			if err != nil {
				return err
			}

			maxErr, err := basis.OrthonormalityError()
			if err != nil {
				return err
			}

			log.Info().Str("params", params.String()).Float64("orthonormality_error", maxErr).Msg("basis built")

			return writeBasis(cmd.OutOrStdout(), basis, maxErr)
		},
	}
}

func newProjectCmd(cfg *Config, cache *legendre.Cache) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a function onto the basis and compare the reconstruction with the function",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd.OutOrStdout(), cache, *cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Function, "func", "f", cfg.Function, "function to project")
	cmd.Flags().IntVarP(&cfg.Samples, "samples", "s", cfg.Samples, "number of equispaced points of the printed table (0 disables the table)")
	cmd.Flags().StringVar(&cfg.Seed, "seed", cfg.Seed, "seed of the random points of the precision statistics (empty for fresh randomness)")

	return cmd
}

func runProject(w io.Writer, cache *legendre.Cache, cfg Config) (err error) {

	var f quadrature.Function
	if f, err = getFunction(cfg.Function); err != nil {
		return
	}

	var params legendre.Parameters
	if params, err = legendre.NewParametersFromLiteral(cfg.ParametersLiteral); err != nil {
		return
	}

	var basis *legendre.Basis
	if basis, err = cache.Get(params); err != nil {
		return
	}

	var approx *projection.Approximation
	if approx, err = projection.Project(basis, f, params.A(), params.B()); err != nil {
		return
	}

	log.Info().Str("func", cfg.Function).Str("params", params.String()).Msg("function projected")

	if err = writeCoefficients(w, cfg.Function, approx.Coefficients()); err != nil {
		return
	}

	if cfg.Samples > 1 {

		xs := make([]float64, cfg.Samples)
		for i := range xs {
			xs[i] = params.A() + float64(i)*(params.B()-params.A())/float64(cfg.Samples-1)
		}

		if err = writeSamples(w, cfg.Function, xs, utils.Apply(xs, f), approx.Sample(xs)); err != nil {
			return
		}
	}

	// An empty seed draws fresh points at each run.
	var prng sampling.PRNG
	if cfg.Seed == "" {
		prng, err = sampling.NewPRNG()
	} else {
		prng, err = sampling.NewKeyedPRNG([]byte(cfg.Seed))
	}

	if err != nil {
		return
	}

	var xs []float64
	if xs, err = sampling.Float64s(prng, params.A(), params.B(), 1024); err != nil {
		return
	}

	var prec projection.PrecisionStats
	if prec, err = projection.GetPrecisionStats(f, approx, xs); err != nil {
		return
	}

	var mse float64
	if mse, err = projection.MeanSquaredError(f, approx, params.A(), params.B(), params.N()); err != nil {
		return
	}

	log.Debug().Str("func", cfg.Function).Float64("mse", mse).Float64("max_delta", prec.MaxDelta).Msg("precision")

	_, err = fmt.Fprintf(w, "%s\nMSE (quadrature) : %10.3e\n", prec.String(), mse)

	return
}

func writeBasis(w io.Writer, basis *legendre.Basis, maxErr float64) error {

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "P_i\tdegree\tcoefficients (x^0 ... x^i)\n")
	for i, p := range basis.Polynomials() {
		fmt.Fprintf(tw, "P_%d\t%d\t%.10g\n", i, p.Degree(), p.Coeffs)
	}

	fmt.Fprintf(tw, "\nmax |<P_i, P_j> - delta_ij| = %.3e\n", maxErr)

	return tw.Flush()
}

func writeCoefficients(w io.Writer, name string, coeffs []float64) error {

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n%s\ni\tc_i = <f, P_i>\n", name)
	for i, c := range coeffs {
		fmt.Fprintf(tw, "%d\t% .10e\n", i, c)
	}

	return tw.Flush()
}

func writeSamples(w io.Writer, name string, xs, want, have []float64) error {

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\nx\t%s(x)\tprojection(x)\tdelta\n", name)
	for i, x := range xs {
		fmt.Fprintf(tw, "% .6f\t% .10f\t% .10f\t% .3e\n", x, want[i], have[i], want[i]-have[i])
	}

	fmt.Fprintf(tw, "\nmax |%s(x) - projection(x)| on the table = %.3e\n", name, utils.MaxAbsDiff(want, have))

	return tw.Flush()
}
