package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// monitorCmd 表示monitor命令，用于实时监控队列状态
var monitorCmd = &cobra.Command{
	Use:   "monitor [queue-name]",
	Short: "Monitor queue activity in real-time",
	Long: `Watch queue statistics update in real-time.
Press Ctrl+C to stop monitoring.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		interval, _ := cmd.Flags().GetInt("interval")
		refreshDuration := time.Duration(interval) * time.Millisecond

		service := GetQueueService()

		// 检查队列是否存在
		q, err := service.GetQueue(queueName)
		if err != nil {
			return fmt.Errorf("queue '%s' not found", queueName)
		}

		// 设置信号处理，捕获Ctrl+C
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		fmt.Printf("Monitoring queue '%s' (refresh: %v, press Ctrl+C to stop)...\n\n",
			queueName, refreshDuration)

		// 记录前一次的统计信息，用于计算变化率
		var prevStats struct {
			Pushed uint64
			Popped uint64
			Time   time.Time
		}
		prevStats.Time = time.Now()

		ticker := time.NewTicker(refreshDuration)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats, err := service.QueueStats(queueName)
				if err != nil {
					return fmt.Errorf("failed to get queue statistics: %w", err)
				}

				// 计算每秒操作率
				now := time.Now()
				elapsed := now.Sub(prevStats.Time).Seconds()
				pushRate := float64(stats.Pushed-prevStats.Pushed) / elapsed
				popRate := float64(stats.Popped-prevStats.Popped) / elapsed

				// 清屏，移动光标到左上角
				fmt.Print("\033[H\033[2J")

				fmt.Printf("Time: %s\n\n", now.Format("15:04:05"))
				fmt.Printf("Queue: %s\n", queueName)

				state := "open"
				if q.IsClosed() {
					state = "closed"
				}
				fmt.Printf("State: %s\n", state)
				fmt.Printf("Size: %d/%d (%.1f%%)\n",
					stats.Size, stats.Capacity, stats.Utilization()*100)
				fmt.Printf("Rates: %.1f push/s, %.1f pop/s\n", pushRate, popRate)
				fmt.Printf("Totals: %d pushed, %d popped, %d rejected\n",
					stats.Pushed, stats.Popped, stats.Rejected)

				if stats.PushTimeouts > 0 || stats.PopTimeouts > 0 {
					fmt.Printf("Timeouts: %d push, %d pop\n",
						stats.PushTimeouts, stats.PopTimeouts)
				}

				fmt.Println("\nPress Ctrl+C to stop monitoring...")

				prevStats.Pushed = stats.Pushed
				prevStats.Popped = stats.Popped
				prevStats.Time = now

			case <-sigChan:
				fmt.Println("\nStopped monitoring.")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	// 添加参数
	monitorCmd.Flags().IntP("interval", "i", 1000, "Refresh interval in milliseconds")
}
