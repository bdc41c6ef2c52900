package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
)

// enqueueCmd 表示enqueue命令，用于向队列添加项目
var enqueueCmd = &cobra.Command{
	Use:   "enqueue [queue-name]",
	Short: "Push items onto a queue",
	Long: `Push one or more items onto a specified queue.
With --wait the push blocks up to the given duration when the queue is
full; without it a full queue rejects the item immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		item, _ := cmd.Flags().GetString("item")
		filePath, _ := cmd.Flags().GetString("file")
		wait, _ := cmd.Flags().GetDuration("wait")

		// 检查是否同时指定了item和file
		if item != "" && filePath != "" {
			return fmt.Errorf("cannot specify both --item and --file flags at the same time")
		}

		if item == "" && filePath == "" {
			return fmt.Errorf("must specify either --item or --file flag")
		}

		service := GetQueueService()

		// 从文件批量入队
		if filePath != "" {
			return enqueueFromFile(service, queueName, filePath, wait)
		}

		if err := service.Enqueue(queueName, item, wait); err != nil {
			return fmt.Errorf("failed to enqueue item (%s): %w",
				queueservice.StatusText(err), err)
		}

		fmt.Printf("Successfully enqueued item to queue '%s'\n", queueName)
		return nil
	},
}

// enqueueFromFile 从文件中读取项目并入队
func enqueueFromFile(service queueservice.Service, queueName, filePath string, wait time.Duration) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var enqueued, failed int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue // 跳过空行
		}

		if err := service.Enqueue(queueName, line, wait); err != nil {
			failed++
			fmt.Printf("Failed to enqueue: %s - %s\n", line, queueservice.StatusText(err))
		} else {
			enqueued++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	fmt.Printf("Bulk enqueue to queue '%s' completed: %d items enqueued, %d failed\n",
		queueName, enqueued, failed)
	return nil
}

func init() {
	rootCmd.AddCommand(enqueueCmd)

	// 添加参数
	enqueueCmd.Flags().StringP("item", "i", "", "Item to enqueue")
	enqueueCmd.Flags().StringP("file", "f", "", "File containing items to enqueue (one per line)")
	enqueueCmd.Flags().DurationP("wait", "w", 0, "Max time to block when the queue is full (0 = no blocking)")
}
