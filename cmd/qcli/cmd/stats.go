package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
)

// statsCmd 表示stats命令，用于显示队列的统计信息
var statsCmd = &cobra.Command{
	Use:   "stats [queue-name]",
	Short: "Display queue statistics",
	Long: `Display detailed statistics for a specified queue.
This includes size, capacity, operation counts, blocks and timeouts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		service := GetQueueService()

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			snapshot, err := service.Snapshot(queueName)
			if err != nil {
				return fmt.Errorf("failed to get queue snapshot: %w", err)
			}

			data, err := queueservice.SerializeQueueData(snapshot)
			if err != nil {
				return fmt.Errorf("failed to serialize snapshot: %w", err)
			}

			fmt.Println(string(data))
			return nil
		}

		stats, err := service.QueueStats(queueName)
		if err != nil {
			return fmt.Errorf("failed to get queue statistics: %w", err)
		}

		fmt.Printf("Statistics for queue '%s':\n\n", queueName)
		fmt.Print(queueservice.FormatQueueStats(stats))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	// 添加参数
	statsCmd.Flags().Bool("json", false, "Print a JSON snapshot of the queue")
}
