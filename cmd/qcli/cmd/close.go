package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// closeCmd 表示close命令，用于关闭队列
var closeCmd = &cobra.Command{
	Use:   "close [queue-name]",
	Short: "Close a queue",
	Long: `Close a specified queue. Closing is idempotent and irreversible:
all blocked producers and consumers are woken immediately, no further
pushes succeed, and remaining items can still be dequeued.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		service := GetQueueService()
		if err := service.CloseQueue(queueName); err != nil {
			return fmt.Errorf("failed to close queue: %w", err)
		}

		fmt.Printf("Queue '%s' closed.\n", queueName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
