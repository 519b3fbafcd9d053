package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/evaluator"
	"github.com/scopelock/leadflow/internal/proposal"
)

var proposeFeed string

var proposeCmd = &cobra.Command{
	Use:   "propose <job.json>",
	Short: "Draft a proposal for a job JSON file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := loadJob(args[0], proposeFeed)
		if err != nil {
			return err
		}

		// The draft only needs an evaluation for context, not a verdict;
		// the offline heuristic is enough here.
		eval := evaluator.New(evaluator.NewHeuristicEngine()).Evaluate(cmd.Context(), job)

		drafter := proposal.NewDrafter(cfg.Proposal)
		p := drafter.Draft(job, eval)

		zap.L().Info("proposal drafted",
			zap.String("job_id", job.ID),
			zap.Int("chars", len(p.Text)),
		)

		fmt.Println(p.Text)
		return nil
	},
}

func init() {
	proposeCmd.Flags().StringVar(&proposeFeed, "feed", "", "feed name to attribute the job to")
	rootCmd.AddCommand(proposeCmd)
}
