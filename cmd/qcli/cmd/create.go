package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
)

// createCmd 表示create命令，用于创建新队列
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new bounded queue",
	Long: `Create a new bounded blocking queue with a fixed capacity.
Capacity 0 is legal and creates a queue with no slots: every blocking
push waits until it times out or the queue is closed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		capacity, _ := cmd.Flags().GetInt("capacity")
		pushTimeout, _ := cmd.Flags().GetDuration("push-timeout")
		popTimeout, _ := cmd.Flags().GetDuration("pop-timeout")

		opts := queueservice.QueueOptions{
			Capacity:    capacity,
			PushTimeout: pushTimeout,
			PopTimeout:  popTimeout,
		}

		service := GetQueueService()
		if err := service.CreateQueue(name, opts); err != nil {
			return fmt.Errorf("failed to create queue: %w", err)
		}

		fmt.Printf("Queue '%s' created successfully.\n", name)
		fmt.Printf("Capacity: %d\n", capacity)

		if pushTimeout > 0 {
			fmt.Printf("Default push timeout: %v\n", pushTimeout)
		}
		if popTimeout > 0 {
			fmt.Printf("Default pop timeout: %v\n", popTimeout)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	// 添加参数
	createCmd.Flags().IntP("capacity", "c", 16, "Queue capacity (0 for a zero-slot queue)")
	createCmd.Flags().Duration("push-timeout", 2*time.Second, "Default timeout for blocking push operations")
	createCmd.Flags().Duration("pop-timeout", 100*time.Millisecond, "Default timeout for blocking pop operations")
}
