package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
)

var (
	// 队列服务实例，所有命令共享
	queueSvc queueservice.Service
)

// rootCmd 表示CLI工具的根命令
var rootCmd = &cobra.Command{
	Use:   "qcli",
	Short: "A CLI tool for managing bounded blocking queues",
	Long: `Queue CLI (qcli) is a command line interface for creating and managing
bounded blocking queues. You can push and pop items with optional blocking
timeouts, close queues, monitor statistics and generate benchmark load.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 如果没有子命令被调用，显示帮助信息
		cmd.Help()
	},
}

// Execute 运行根命令并处理任何错误
func Execute() {
	// 设置队列服务实例
	queueSvc = queueservice.NewInMemoryService()

	// 直接运行交互模式
	runInteractiveMode()

	// 在程序结束时关闭队列服务
	queueSvc.Close()
}

// GetQueueService 返回队列服务实例，供子命令使用
func GetQueueService() queueservice.Service {
	return queueSvc
}
