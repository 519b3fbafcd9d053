package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/pipeline"
)

var evaluateFeed string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <job.json>",
	Short: "Evaluate a single job from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := loadJob(args[0], evaluateFeed)
		if err != nil {
			return err
		}

		eval, err := initEvaluator()
		if err != nil {
			return err
		}

		result := eval.Evaluate(cmd.Context(), job)

		zap.L().Info("evaluation complete",
			zap.String("job_id", job.ID),
			zap.String("decision", string(result.Decision)),
			zap.Int("confidence", result.Confidence),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Job        model.Job        `json:"job"`
			Evaluation model.Evaluation `json:"evaluation"`
		}{job, result})
	},
}

// loadJob reads a raw project record from a file and normalizes it.
func loadJob(path, feedName string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, eris.Wrap(err, "read job file")
	}

	var project model.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return model.Job{}, eris.Wrap(err, "parse job file")
	}

	var feed *model.Feed
	if feedName != "" {
		feed = &model.Feed{Name: feedName}
	}

	return pipeline.Normalize(project, feed), nil
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateFeed, "feed", "", "feed name to attribute the job to")
	rootCmd.AddCommand(evaluateCmd)
}
