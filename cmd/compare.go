package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/rissim/internal/grid"
	"github.com/cwbudde/rissim/internal/imgio"
	"github.com/cwbudde/rissim/internal/opt"
	"github.com/cwbudde/rissim/internal/ssim"
)

var (
	targetPath string
	predPath   string

	winSize    int
	dataRange  float64
	gaussian   bool
	sigma      float64
	k1, k2, k3 float64
	sampleCov  bool

	riFactor   float64
	useMSE     bool
	components bool

	removeBG float64

	optimizerName string
	optIters      int
	optPop        int
	optSeed       int64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score one prediction against one reference image",
	Long: `Computes range-invariant SSIM between a reference (target) image and a
predicted image. By default the intensity-scale factor is optimized
against the SSIM objective; --mse switches to the closed-form
MSE-optimal factor and --ri-factor pins it (1.0 gives ordinary SSIM).`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&targetPath, "target", "", "Reference image path (required)")
	compareCmd.Flags().StringVar(&predPath, "pred", "", "Predicted image path (required)")
	compareCmd.Flags().IntVar(&winSize, "win-size", 0, "Window side length (odd; 0 = derive from weighting)")
	compareCmd.Flags().Float64Var(&dataRange, "data-range", 0, "Data range (0 = infer from source bit depth)")
	compareCmd.Flags().BoolVar(&gaussian, "gaussian", true, "Gaussian window weighting (false = box window)")
	compareCmd.Flags().Float64Var(&sigma, "sigma", 1.5, "Gaussian window standard deviation")
	compareCmd.Flags().Float64Var(&k1, "k1", 0.01, "Luminance stabilizer constant K1")
	compareCmd.Flags().Float64Var(&k2, "k2", 0.03, "Contrast stabilizer constant K2")
	compareCmd.Flags().Float64Var(&k3, "k3", 0, "Structure stabilizer constant K3 (0 = two-constant formula)")
	compareCmd.Flags().BoolVar(&sampleCov, "sample-covariance", true, "Normalize covariances by N-1 instead of N")
	compareCmd.Flags().Float64Var(&riFactor, "ri-factor", -1, "Fixed scale factor (negative = resolve automatically)")
	compareCmd.Flags().BoolVar(&useMSE, "mse", false, "Resolve the scale factor from the MSE closed form")
	compareCmd.Flags().BoolVar(&components, "components", false, "Print luminance/contrast/structure means")
	compareCmd.Flags().Float64Var(&removeBG, "remove-background", -1, "Subtract this percentile from both images before scoring (negative = off)")
	compareCmd.Flags().StringVar(&optimizerName, "optimizer", "nelder-mead", "Scale optimizer: nelder-mead, mayfly")
	compareCmd.Flags().IntVar(&optIters, "iters", 100, "Max iterations (mayfly)")
	compareCmd.Flags().IntVar(&optPop, "pop", 30, "Population size (mayfly)")
	compareCmd.Flags().Int64Var(&optSeed, "seed", 42, "Random seed (mayfly)")

	compareCmd.MarkFlagRequired("target")
	compareCmd.MarkFlagRequired("pred")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	target, pred, opts, err := loadComparison()
	if err != nil {
		return err
	}

	switch {
	case riFactor >= 0:
		opts.Scale = ssim.ScaleFixed
		opts.RIFactor = riFactor
	case useMSE:
		opts.Scale = ssim.ScaleMSEOptimal
	default:
		opts.Scale = ssim.ScaleSSIMOptimal
	}
	opts.ReturnComponents = components

	res, err := ssim.RangeInvariant(target, pred, opts)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	fmt.Printf("SSIM:  %.6f\n", res.MSSIM)
	fmt.Printf("alpha: %.6f\n", res.Alpha)
	if components {
		fmt.Printf("luminance: %.6f\n", res.LuminanceMean)
		fmt.Printf("contrast:  %.6f\n", res.ContrastMean)
		fmt.Printf("structure: %.6f\n", res.StructureMean)
	}
	return nil
}

// loadComparison loads both images and assembles Options from the shared
// compare flags.
func loadComparison() (target, pred *grid.Grid, opts ssim.Options, err error) {
	target, targetRange, err := imgio.Load(targetPath)
	if err != nil {
		return nil, nil, opts, err
	}
	pred, predRange, err := imgio.Load(predPath)
	if err != nil {
		return nil, nil, opts, err
	}
	slog.Info("loaded images", "width", target.W, "height", target.H)

	if removeBG >= 0 {
		target = imgio.RemoveBackground(target, removeBG)
		pred = imgio.RemoveBackground(pred, removeBG)
	}

	opts = ssim.DefaultOptions()
	opts.WinSize = winSize
	opts.GaussianWeights = gaussian
	opts.Sigma = sigma
	opts.K1 = k1
	opts.K2 = k2
	opts.UseSampleCovariance = sampleCov
	if k3 > 0 {
		opts.Variant = ssim.ThreeConstant
		opts.K3 = k3
	}

	opts.DataRange = dataRange
	if opts.DataRange <= 0 {
		opts.DataRange = max(targetRange, predRange)
		slog.Warn("data range inferred from source bit depth; pass --data-range to avoid mistakes",
			"data_range", opts.DataRange)
	}

	if optimizerName == "mayfly" {
		opts.Optimizer = opt.NewMayfly(optIters, optPop, optSeed)
	}
	return target, pred, opts, nil
}
