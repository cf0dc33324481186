package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/rissim/internal/imgio"
	"github.com/cwbudde/rissim/internal/opt"
	"github.com/cwbudde/rissim/internal/ssim"
)

var (
	calTargets   []string
	calPreds     []string
	calDataRange float64
	calGaussian  bool
	calSigma     float64
	calOptimizer string
	calIters     int
	calPop       int
	calSeed      int64
	calOut       string
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit one global scale factor over a batch of image pairs",
	Long: `Pools the windowed moment statistics of every (target, prediction)
pair and runs a single optimization, treating the whole collection as
defining one global intensity-scale factor. All pairs share one data
range; if none is given, the global max-min span over the target images
is used.`,
	RunE: runCalibrate,
}

func init() {
	calibrateCmd.Flags().StringArrayVar(&calTargets, "target", nil, "Reference image path (repeatable, paired with --pred by order)")
	calibrateCmd.Flags().StringArrayVar(&calPreds, "pred", nil, "Predicted image path (repeatable)")
	calibrateCmd.Flags().Float64Var(&calDataRange, "data-range", 0, "Shared data range for the whole batch (0 = global target span)")
	calibrateCmd.Flags().BoolVar(&calGaussian, "gaussian", true, "Gaussian window weighting (false = box window)")
	calibrateCmd.Flags().Float64Var(&calSigma, "sigma", 1.5, "Gaussian window standard deviation")
	calibrateCmd.Flags().StringVar(&calOptimizer, "optimizer", "nelder-mead", "Scale optimizer: nelder-mead, mayfly")
	calibrateCmd.Flags().IntVar(&calIters, "iters", 100, "Max iterations (mayfly)")
	calibrateCmd.Flags().IntVar(&calPop, "pop", 30, "Population size (mayfly)")
	calibrateCmd.Flags().Int64Var(&calSeed, "seed", 42, "Random seed (mayfly)")
	calibrateCmd.Flags().StringVar(&calOut, "out", "", "Write the calibration result to this JSON file")

	calibrateCmd.MarkFlagRequired("target")
	calibrateCmd.MarkFlagRequired("pred")
	rootCmd.AddCommand(calibrateCmd)
}

// calibrationResult is the JSON document written by --out.
type calibrationResult struct {
	Alpha     float64 `json:"alpha"`
	DataRange float64 `json:"dataRange"`
	Pairs     int     `json:"pairs"`
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if len(calTargets) != len(calPreds) {
		return fmt.Errorf("got %d targets but %d predictions", len(calTargets), len(calPreds))
	}
	if len(calTargets) == 0 {
		return fmt.Errorf("at least one --target/--pred pair is required")
	}

	pairs := make([]ssim.Pair, 0, len(calTargets))
	span := 0.0
	for i, tp := range calTargets {
		target, _, err := imgio.Load(tp)
		if err != nil {
			return err
		}
		pred, _, err := imgio.Load(calPreds[i])
		if err != nil {
			return err
		}
		lo, hi := target.MinMax()
		if hi-lo > span {
			span = hi - lo
		}
		pairs = append(pairs, ssim.Pair{Target: target, Pred: pred})
	}
	slog.Info("loaded batch", "pairs", len(pairs))

	opts := ssim.DefaultOptions()
	opts.GaussianWeights = calGaussian
	opts.Sigma = calSigma
	opts.DataRange = calDataRange
	if opts.DataRange <= 0 {
		opts.DataRange = span
		slog.Warn("shared data range derived from target images; pass --data-range for a calibrated span",
			"data_range", opts.DataRange)
	}
	if calOptimizer == "mayfly" {
		opts.Optimizer = opt.NewMayfly(calIters, calPop, calSeed)
	}

	alpha, err := ssim.PooledRIFactor(pairs, opts)
	if err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}

	fmt.Printf("alpha: %.6f\n", alpha)

	if calOut != "" {
		doc := calibrationResult{Alpha: alpha, DataRange: opts.DataRange, Pairs: len(pairs)}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := os.WriteFile(calOut, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", calOut, err)
		}
		slog.Info("wrote calibration", "path", calOut)
	}
	return nil
}
