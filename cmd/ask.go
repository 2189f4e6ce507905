package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/billing-assistant/internal/assistant"
	"github.com/sells-group/billing-assistant/internal/prompt"
)

var askCategory string

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer one question and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "ask", false)
		if err != nil {
			return err
		}
		defer env.Close()

		answer := env.Assistant.Answer(cmd.Context(), assistant.Request{
			Message:  strings.Join(args, " "),
			Category: askCategory,
		})
		return printJSON(cmd, answer)
	},
}

func init() {
	askCmd.Flags().StringVar(&askCategory, "category", prompt.DefaultCategory, "answer persona category")
	rootCmd.AddCommand(askCmd)
}
