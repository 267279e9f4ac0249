package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mongo-toolkit/internal/checks"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/report"
)

var (
	categoriesOutput string
	listOutput       string
	listJSON         bool
	describeOutput   string
)

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesOutput, "output", "o", "text", "output format: text, json, yaml")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "output format: text, json, yaml")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "shorthand for --output json")
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "text", "output format: text, json, yaml")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List check categories",
	Long:  `List every check category with its title and the number of checks it holds.`,
	Example: `  mongo-toolkit categories
  mongo-toolkit categories -o json

See Also: mongo-toolkit list`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List available checks",
	Long: `List check descriptors in registration order.

With a category argument only that category's checks are shown; the
category is matched case-insensitively.`,
	Example: `  # Every check
  mongo-toolkit list

  # One category, machine-readable
  mongo-toolkit list replication --json

See Also: mongo-toolkit categories, mongo-toolkit describe`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var describeCmd = &cobra.Command{
	Use:   "describe <issue-id>",
	Short: "Show details of a check",
	Long: `Show a check's metadata, description and the options it accepts with
their defaults. Options marked with the threshold alias also take the
value of --threshold when they are not set by name.`,
	Example: `  mongo-toolkit describe performance:slow-queries

See Also: mongo-toolkit list, mongo-toolkit run`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runCategories(cmd *cobra.Command, _ []string) error {
	r, err := newReporter(cmd, categoriesOutput)
	if err != nil {
		return err
	}
	return r.Categories(checks.Default().Categories())
}

func runList(cmd *cobra.Command, args []string) error {
	output := listOutput
	if listJSON {
		output = string(report.FormatJSON)
	}
	r, err := newReporter(cmd, output)
	if err != nil {
		return err
	}

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}
	return r.Issues(checks.Default().List(filter))
}

func runDescribe(cmd *cobra.Command, args []string) error {
	r, err := newReporter(cmd, describeOutput)
	if err != nil {
		return err
	}

	issue, err := checks.Default().Lookup(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run: mongo-toolkit list")
	}
	return r.Describe(issue)
}

func newReporter(cmd *cobra.Command, output string) (*report.Reporter, error) {
	format, err := report.ParseFormat(output)
	if err != nil {
		return nil, errors.NewUserError(err, "Use --output text, json or yaml")
	}
	return report.NewReporter(cmd.OutOrStdout(), format), nil
}
