package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/billing-assistant/internal/model"
)

type searchOutput struct {
	Specialty *model.Specialty      `json:"specialty"`
	Result    model.RetrievalResult `json:"result"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Classify and retrieve reference content for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "search", false)
		if err != nil {
			return err
		}
		defer env.Close()

		res, sp := env.Assistant.Search(cmd.Context(), strings.Join(args, " "))
		return printJSON(cmd, searchOutput{Specialty: sp, Result: res})
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <query>",
	Short: "Print the specialty a query routes to, or null",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "classify", false)
		if err != nil {
			return err
		}
		defer env.Close()

		sp, _ := env.Classifier.Classify(strings.Join(args, " "))
		return printJSON(cmd, sp)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, classifyCmd)
}
