package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"variation-manager/core/config"
	"variation-manager/core/logger"
	"variation-manager/core/reconcile"
	"variation-manager/core/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile command
	reconcileFacets   string
	reconcilePrevious string
	reconcileOut      string
	clearData         bool
	yesConfirm        bool
)

// reconcileCmd regenerates a matrix and carries data over from a previous one.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Regenerate combinations and carry data over from a previous matrix",
	Long: `Generates the combinations of a facet file and fills them with the data of
a previous combination list: exact key matches first, then the first previous
combination whose values are all contained in the new one, otherwise blank.

Optionally clear every row's data afterwards (SKU, UPC, weight, dimensions and
company prices/SKUs).

Examples:
  # Report and print the reconciled matrix
  reconcile --facets shirt.yaml --previous shirt.json

  # Write the result to a file
  reconcile --facets shirt.yaml --previous shirt.json --out next.json

  # Clear data with auto-confirm (non-interactive)
  reconcile --facets shirt.yaml --previous shirt.json --clear --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFacets, "facets", "", "Path to the new YAML facet file")
	reconcileCmd.Flags().StringVar(&reconcilePrevious, "previous", "", "Path to the previous combinations (JSON)")
	reconcileCmd.Flags().StringVar(&reconcileOut, "out", "", "Write the result to this file instead of stdout")
	reconcileCmd.Flags().BoolVar(&clearData, "clear", false, "Clear all combination data after reconciling")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = reconcileCmd.MarkFlagRequired("facets")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	facets, err := loadFacets(reconcileFacets)
	if err != nil {
		return err
	}

	st := store.New(cfg.Variation.CompanyIDs()...)
	if reconcilePrevious != "" {
		previous, err := loadCombinations(reconcilePrevious)
		if err != nil {
			return err
		}
		st = store.Restore(nil, previous, cfg.Variation.CompanyIDs()...)
	}

	plan := st.SetFacets(facets)
	printReconcileReport(l, plan)

	if clearData {
		if confirmDestructiveAction(cmd.InOrStdin()) {
			st.ClearAllCombinationData()
			l.Warn("Cleared data of all combinations", zap.Int("count", st.Len()))
		} else {
			l.Warn("Clear cancelled by user. Data was kept.")
		}
	}

	if reconcileOut != "" {
		if err := writeJSONFile(reconcileOut, st.Combinations()); err != nil {
			return err
		}
		l.Info("Combinations written", zap.String("file", reconcileOut), zap.Int("count", st.Len()))
		return nil
	}
	if err := writeJSON(cmd.OutOrStdout(), st.Combinations()); err != nil {
		return fmt.Errorf("failed to write combinations: %w", err)
	}
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total", s.Total),
		zap.Int("previous", s.Previous),
		zap.Int("exact", s.Exact),
		zap.Int("subset", s.Subset),
		zap.Int("blank", s.Blank),
		zap.Int("dropped", s.Dropped),
	)

	if s.Ambiguous == 0 {
		return
	}

	// Show a sample of ambiguous matches (max 5 for logger)
	shown := 0
	for _, m := range plan.Matches {
		if !m.Ambiguous() {
			continue
		}
		if shown == 5 {
			l.Warn("Additional ambiguous matches not shown", zap.Int("count", s.Ambiguous-shown))
			break
		}
		l.Warn("Ambiguous subset match",
			zap.String("key", m.Key),
			zap.String("source", m.SourceKey),
			zap.Int("candidates", m.Candidates),
		)
		shown++
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader) bool {
	if yesConfirm {
		fmt.Fprintln(os.Stderr, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(os.Stderr, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
