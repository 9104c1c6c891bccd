package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mediguard/internal/pipeline"
)

var checkTimeout time.Duration

// checkCmd represents the check command group
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single screening check from the command line",
	Long: `Check runs one screening pipeline and prints the result as JSON.

Example:
  mediguard check profile-image photo.jpg
  mediguard check food-image dinner.jpg --condition "kidney disease"
  mediguard check drug ibuprofen "kidney disease"`,
}

var checkProfileImageCmd = &cobra.Command{
	Use:   "profile-image <file>",
	Short: "Verify that an image shows a person",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckProfileImage,
}

var checkCondition string

var checkFoodImageCmd = &cobra.Command{
	Use:   "food-image <file>",
	Short: "Classify a food image and assess it against a condition",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckFoodImage,
}

var checkDrugCmd = &cobra.Command{
	Use:   "drug <drug> <condition>",
	Short: "Check a drug against a patient condition on openFDA labels",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheckDrug,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkProfileImageCmd)
	checkCmd.AddCommand(checkFoodImageCmd)
	checkCmd.AddCommand(checkDrugCmd)

	checkCmd.PersistentFlags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkFoodImageCmd.Flags().StringVar(&checkCondition, "condition", "", "patient condition for the safety assessment")
}

func newCheckPipeline() (*pipeline.Pipeline, error) {
	p, err := pipeline.New(buildConfig(), newLogger())
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	return p, nil
}

func runCheckProfileImage(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	p, err := newCheckPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	return printJSON(p.CheckProfileImage(ctx, image))
}

func runCheckFoodImage(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	p, err := newCheckPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	return printJSON(p.CheckFoodImage(ctx, image, checkCondition))
}

func runCheckDrug(cmd *cobra.Command, args []string) error {
	p, err := newCheckPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	return printJSON(p.CheckDrugInteraction(ctx, args[0], args[1]))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
