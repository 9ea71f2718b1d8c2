/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

// bulkQACmd represents the bulk-qa command
var bulkQACmd = &cobra.Command{
	Use:   "bulk-qa",
	Short: "Answer every question of a questions PDF against a content PDF",
	Long: `Reads a content PDF and a questions PDF from disk, answers each question
in order and prints the answers as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		contentPath, _ := cmd.Flags().GetString("content")
		questionsPath, _ := cmd.Flags().GetString("questions")
		if contentPath == "" || questionsPath == "" {
			return fmt.Errorf("--content and --questions are required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		content, err := utils.ReadLocalFile(contentPath, cfg.Limits.MaxUploadBytes)
		if err != nil {
			return err
		}
		questions, err := utils.ReadLocalFile(questionsPath, cfg.Limits.MaxUploadBytes)
		if err != nil {
			return err
		}

		a, err := newApp(context.Background(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		resp, err := a.qaService.BulkQA(cmd.Context(), content, questions, func(p types.BulkQAProgress) {
			log.Info().Int("question", p.Index+1).Int("total", p.Total).Msg("Answered question")
		})
		if err != nil {
			return err
		}
		if failed := resp.FailedCount(); failed > 0 {
			log.Warn().Int("failed", failed).Int("total", len(resp.Answers)).Msg("Some questions could not be answered")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(bulkQACmd)
	bulkQACmd.Flags().StringP("content", "c", "", "Path to the content PDF")
	bulkQACmd.Flags().StringP("questions", "q", "", "Path to the questions PDF")
}
