package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okazmin/kompas/internal/snapshot"
)

var (
	snapshotDir  string
	listSnaps    bool
	decideCard   string
	decideAction string
	decideReason string
	decideSnap   string
	decideUser   string
)

// freezeCmd represents the freeze command
var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Evaluate the board and freeze the result as an immutable snapshot",
	Long: `Freeze runs one board evaluation and writes the report to the
snapshot directory together with sha256 hashes of the workspace config
and the input data, so a frozen decision can always be traced back to
the exact evidence it was based on.

Example:
  kompas freeze --workspace config.yaml --survey survey.csv --kpi kpi.csv
  kompas freeze --list`,
	RunE: runFreeze,
}

// decideCmd represents the decide command
var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Record a human decision on a card in the audit trail",
	Long: `Decide appends an Approve, Edit or Override entry to the
append-only audit trail, referencing a frozen snapshot.

Example:
  kompas decide --card D001 --action Approve --snapshot acme_20260301_100000
  kompas decide --card D002 --action Override --reason "strategic priority" --user cto`,
	RunE: runDecide,
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	rootCmd.AddCommand(decideCmd)

	freezeCmd.Flags().StringVarP(&workspacePath, "workspace", "w", "", "workspace config YAML")
	freezeCmd.Flags().StringVar(&surveyPath, "survey", "", "survey responses CSV")
	freezeCmd.Flags().StringVar(&kpiPath, "kpi", "", "KPI measurements CSV")
	freezeCmd.Flags().StringVar(&snapshotDir, "snapshots", "snapshots", "snapshot directory")
	freezeCmd.Flags().BoolVar(&listSnaps, "list", false, "list existing snapshots instead of freezing")

	decideCmd.Flags().StringVar(&decideCard, "card", "", "decision card id (required)")
	decideCmd.Flags().StringVar(&decideAction, "action", "", "Approve, Edit or Override (required)")
	decideCmd.Flags().StringVar(&decideReason, "reason", "", "reason for the decision")
	decideCmd.Flags().StringVar(&decideSnap, "snapshot", "", "snapshot id the decision refers to")
	decideCmd.Flags().StringVar(&decideUser, "user", "", "who decided")
	decideCmd.Flags().StringVar(&snapshotDir, "snapshots", "snapshots", "snapshot directory")

	_ = decideCmd.MarkFlagRequired("card")
	_ = decideCmd.MarkFlagRequired("action")
}

func runFreeze(cmd *cobra.Command, args []string) error {
	mgr, err := snapshot.NewManager(snapshotDir)
	if err != nil {
		return err
	}

	if listSnaps {
		ids, err := mgr.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	if workspacePath == "" {
		return fmt.Errorf("a workspace file is required (--workspace)")
	}

	report, err := evaluateBoard()
	if err != nil {
		return err
	}

	snap, err := mgr.Freeze(report, hashFile(workspacePath), hashFiles(surveyPath, kpiPath))
	if err != nil {
		return err
	}

	fmt.Printf("✓ Frozen snapshot: %s\n", snap.ID)
	if verbose {
		fmt.Fprintf(os.Stderr, "  config hash: %s\n", snap.ConfigHash)
		fmt.Fprintf(os.Stderr, "  data hash:   %s\n", snap.DataHash)
	}
	return nil
}

func runDecide(cmd *cobra.Command, args []string) error {
	switch decideAction {
	case snapshot.ActionApprove, snapshot.ActionEdit, snapshot.ActionOverride:
	default:
		return fmt.Errorf("unknown action %q (want %s, %s or %s)",
			decideAction, snapshot.ActionApprove, snapshot.ActionEdit, snapshot.ActionOverride)
	}

	log, err := snapshot.NewAuditLog(filepath.Join(snapshotDir, "audit_trail.log"))
	if err != nil {
		return err
	}
	entry := snapshot.AuditEntry{
		CardID:     decideCard,
		SnapshotID: decideSnap,
		Action:     decideAction,
		Reason:     decideReason,
		User:       decideUser,
	}
	if err := log.Record(entry); err != nil {
		return err
	}
	fmt.Printf("✓ Recorded %s for %s\n", decideAction, decideCard)
	return nil
}

// hashFile returns the sha256 of a file, or "unknown" when unreadable
func hashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	return snapshot.Hash(data)
}

// hashFiles hashes the concatenation of the given files, skipping unset paths
func hashFiles(paths ...string) string {
	var all []byte
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "unknown"
		}
		all = append(all, data...)
	}
	return snapshot.Hash(all)
}
