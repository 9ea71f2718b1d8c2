/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/utils"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a local PDF file",
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		if filePath == "" {
			return fmt.Errorf("--file is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		content, err := utils.ReadLocalFile(filePath, cfg.Limits.MaxUploadBytes)
		if err != nil {
			return err
		}
		a, err := newApp(context.Background(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		resp, err := a.qaService.Summarize(cmd.Context(), service.GetFileNameWithoutExt(filePath), content)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringP("file", "f", "", "Path to the PDF file to summarize")
}
