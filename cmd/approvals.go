package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/store"
)

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Inspect and maintain pending proposal approvals",
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending approvals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		count, err := st.ApprovalCount(ctx)
		if err != nil {
			return eris.Wrap(err, "count approvals")
		}

		fmt.Printf("%d pending approval(s)\n", count)
		return nil
	},
}

var purgeTTLHours int

var approvalsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete pending approvals older than the TTL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		ttlHours := purgeTTLHours
		if ttlHours == 0 {
			ttlHours = cfg.Approval.TTLHours
		}

		n, err := st.PurgeExpired(ctx, time.Duration(ttlHours)*time.Hour)
		if err != nil {
			return eris.Wrap(err, "purge approvals")
		}

		fmt.Printf("Purged %d approval(s) older than %dh\n", n, ttlHours)
		return nil
	},
}

var (
	leadsDecision string
	leadsLimit    int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List recorded leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			Decision: model.Decision(leadsDecision),
			Limit:    leadsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list leads")
		}

		if len(leads) == 0 {
			fmt.Println("No leads recorded.")
			return nil
		}

		for _, l := range leads {
			fmt.Printf("%s  %-5s  conf=%-3d  %s  (%s)\n",
				l.CreatedAt.Format("2006-01-02 15:04"),
				l.Decision, l.Confidence, l.Title, l.FeedName)
		}
		fmt.Printf("%d lead(s)\n", len(leads))
		return nil
	},
}

func init() {
	approvalsPurgeCmd.Flags().IntVar(&purgeTTLHours, "ttl", 0, "age threshold in hours (default from config)")
	leadsCmd.Flags().StringVar(&leadsDecision, "decision", "", "filter by decision (GO or NO-GO)")
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 50, "maximum rows to return")

	approvalsCmd.AddCommand(approvalsListCmd, approvalsPurgeCmd)
	rootCmd.AddCommand(approvalsCmd, leadsCmd)
}
