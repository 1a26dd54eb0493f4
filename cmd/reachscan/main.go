// Command reachscan is a thin driver over internal/engine. The CLI surface
// itself is out of scope (spec.md §1's Non-goals); this exists only so the
// engine has a way to run end to end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/reachscan/reachscan/domain"
	"github.com/reachscan/reachscan/internal/engine"
)

const largeScanConfirmThreshold = 10000

func main() {
	var exclude []string
	var workers int
	var monthlyTrafficGB float64
	var yes bool

	rootCmd := &cobra.Command{
		Use:   "reachscan [path]",
		Short: "find source files a project's entry points can never reach",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg := domain.DefaultEngineConfig()
			cfg.Exclude = exclude
			cfg.Workers = workers
			if monthlyTrafficGB > 0 {
				cfg.MonthlyTrafficGB = monthlyTrafficGB
			}

			if !yes && !confirmLargeScan(root) {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("scanning"),
				progressbar.OptionSpinnerType(14),
			)
			defer bar.Finish()

			result, err := engine.Scan(context.Background(), root, cfg, func(e domain.ProgressEvent) {
				bar.Describe(e.Phase + ": " + e.Message)
				_ = bar.RenderBlank()
			})
			if err != nil {
				return err
			}
			bar.Finish()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	rootCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "additional exclusion globs")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "parse worker count (0 = auto)")
	rootCmd.Flags().Float64Var(&monthlyTrafficGB, "monthly-traffic-gb", 0, "monthly traffic assumption for cost-impact estimates")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt for large scans")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// confirmLargeScan asks for confirmation when root looks large enough that
// a scan could take a while; it never counts files itself (that's
// fileset's job), it only counts the immediate entries of root against
// largeScanConfirmThreshold.
func confirmLargeScan(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) < largeScanConfirmThreshold {
		return true
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s has %d top-level entries, this may take a while. Continue", root, len(entries)),
		IsConfirm: true,
	}
	_, err = prompt.Run()
	return err == nil
}
