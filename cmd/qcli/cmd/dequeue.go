package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
)

// dequeueCmd 表示dequeue命令，用于从队列获取项目
var dequeueCmd = &cobra.Command{
	Use:   "dequeue [queue-name]",
	Short: "Pop and display items from a queue",
	Long: `Pop and display one or more items from a specified queue.
With --wait each pop blocks up to the given duration when the queue is
empty; without it an empty queue returns immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		count, _ := cmd.Flags().GetInt("count")
		silent, _ := cmd.Flags().GetBool("silent")
		wait, _ := cmd.Flags().GetDuration("wait")

		if count < 0 {
			return fmt.Errorf("count must be a non-negative number")
		}
		if count == 0 {
			count = 1
		}

		service := GetQueueService()

		var dequeued int
		for i := 0; i < count; i++ {
			item, err := service.Dequeue(queueName, wait)
			if err != nil {
				// 如果是第一个项目就失败，返回错误
				if i == 0 {
					return fmt.Errorf("failed to dequeue item (%s): %w",
						queueservice.StatusText(err), err)
				}
				// 否则中断并报告部分成功
				fmt.Printf("Dequeued %d item(s) before stopping: %s\n",
					i, queueservice.StatusText(err))
				break
			}

			dequeued++
			if !silent {
				fmt.Printf("Item %d: %s\n", i+1, item)
			}
		}

		if silent || dequeued > 1 {
			fmt.Printf("Successfully dequeued %d item(s) from queue '%s'\n", dequeued, queueName)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dequeueCmd)

	// 添加参数
	dequeueCmd.Flags().IntP("count", "n", 1, "Number of items to dequeue")
	dequeueCmd.Flags().BoolP("silent", "s", false, "Do not print dequeued items")
	dequeueCmd.Flags().DurationP("wait", "w", 0, "Max time to block when the queue is empty (0 = no blocking)")
}
