package cmd

import "github.com/spf13/cobra"

// printDryRunList reports what a command would have done. In JSON mode the
// payload is {"dryRun": true, key: items, ...extra}.
func printDryRunList(cmd *cobra.Command, header, key string, items []string, extra map[string]any) error {
	if isJSON(cmd.Context()) {
		payload := map[string]any{
			"dryRun": true,
			key:      items,
		}
		for k, v := range extra {
			payload[k] = v
		}
		return printJSON(cmd, payload)
	}

	printList(header, items)
	return nil
}
