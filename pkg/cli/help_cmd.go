package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/themesmith/themesmith/pkg/cli/help"
)

var helpTopicCmd = &cobra.Command{
	Use:   "topics [topic]",
	Short: "Show longer help on theming concepts",
	Example: `  themesmith topics
  themesmith topics compound`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprint(w, "themesmith - Help Topics\n\nAvailable Topics:\n")
			fmt.Fprint(w, help.ListTopics())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Usage: themesmith topics <topic>")
			return nil
		}

		content, err := help.GetTopic(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(w, content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(helpTopicCmd)
}
