package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/fyerfyer/fyer-queue/internal/queueservice"
	"github.com/fyerfyer/fyer-queue/queue"
)

// benchCmd 表示bench命令，用于对队列施加生产者/消费者负载
var benchCmd = &cobra.Command{
	Use:   "bench [queue-name]",
	Short: "Run a producer/consumer benchmark against a queue",
	Long: `Generate load on a queue with concurrent rate-limited producers and
consumers. If the queue does not exist a temporary one is created and
removed afterwards. The command reports throughput and the outcome of
every operation, including timeouts and rejections.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queueName := args[0]

		producers, _ := cmd.Flags().GetInt("producers")
		consumers, _ := cmd.Flags().GetInt("consumers")
		count, _ := cmd.Flags().GetInt("count")
		rps, _ := cmd.Flags().GetFloat64("rate")
		capacity, _ := cmd.Flags().GetInt("capacity")
		wait, _ := cmd.Flags().GetDuration("wait")

		if producers <= 0 || consumers <= 0 {
			return fmt.Errorf("producers and consumers must be positive numbers")
		}
		if count <= 0 {
			return fmt.Errorf("count must be a positive number")
		}
		if rps <= 0 {
			return fmt.Errorf("rate must be a positive number")
		}

		service := GetQueueService()

		// 如果队列不存在则创建临时队列，基准结束后删除
		temporary := false
		if _, err := service.GetQueue(queueName); err != nil {
			err := service.CreateQueue(queueName, queueservice.QueueOptions{
				Capacity:    capacity,
				PushTimeout: wait,
				PopTimeout:  wait,
			})
			if err != nil {
				return fmt.Errorf("failed to create benchmark queue: %w", err)
			}
			temporary = true
			defer service.DeleteQueue(queueName)
		}

		fmt.Printf("Benchmarking queue '%s': %d producer(s), %d consumer(s), "+
			"%d item(s) per producer, %.0f ops/s limit\n\n",
			queueName, producers, consumers, count, rps)

		// 所有生产者共享一个限流器，整体速率不超过指定值
		limiter := rate.NewLimiter(rate.Limit(rps), producers)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var (
			produced     atomic.Int64
			consumed     atomic.Int64
			pushTimeouts atomic.Int64
			popTimeouts  atomic.Int64
			rejected     atomic.Int64
		)

		start := time.Now()

		var producerWg sync.WaitGroup
		for p := 0; p < producers; p++ {
			producerWg.Add(1)
			go func() {
				defer producerWg.Done()
				for i := 0; i < count; i++ {
					if err := limiter.Wait(ctx); err != nil {
						return
					}

					item := uuid.New().String()
					err := service.Enqueue(queueName, item, wait)
					switch {
					case err == nil:
						produced.Add(1)
					case errors.Is(err, queue.ErrOperationTimeout):
						pushTimeouts.Add(1)
					case errors.Is(err, queue.ErrQueueClosed):
						rejected.Add(1)
						return
					default:
						rejected.Add(1)
					}
				}
			}()
		}

		// 消费者持续出队，生产者全部完成后通过done通知退出
		done := make(chan struct{})
		var consumerWg sync.WaitGroup
		for c := 0; c < consumers; c++ {
			consumerWg.Add(1)
			go func() {
				defer consumerWg.Done()
				for {
					_, err := service.Dequeue(queueName, wait)
					switch {
					case err == nil:
						consumed.Add(1)
						continue
					case errors.Is(err, queue.ErrQueueClosed):
						return
					case errors.Is(err, queue.ErrOperationTimeout),
						errors.Is(err, queue.ErrQueueEmpty):
						popTimeouts.Add(1)
					}

					select {
					case <-done:
						// 生产者已结束且队列已空，消费者退出
						if consumed.Load() >= produced.Load() {
							return
						}
					default:
					}
				}
			}()
		}

		producerWg.Wait()
		close(done)
		consumerWg.Wait()

		elapsed := time.Since(start)

		fmt.Printf("Completed in %v\n\n", elapsed.Round(time.Millisecond))
		fmt.Printf("Produced: %d item(s) (%.1f/s)\n",
			produced.Load(), float64(produced.Load())/elapsed.Seconds())
		fmt.Printf("Consumed: %d item(s) (%.1f/s)\n",
			consumed.Load(), float64(consumed.Load())/elapsed.Seconds())

		if pushTimeouts.Load() > 0 || popTimeouts.Load() > 0 || rejected.Load() > 0 {
			fmt.Printf("Push timeouts: %d, pop wait expirations: %d, rejected: %d\n",
				pushTimeouts.Load(), popTimeouts.Load(), rejected.Load())
		}

		if !temporary {
			stats, err := service.QueueStats(queueName)
			if err == nil {
				fmt.Printf("\nQueue statistics after benchmark:\n\n")
				fmt.Print(queueservice.FormatQueueStats(stats))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	// 添加参数
	benchCmd.Flags().IntP("producers", "p", 2, "Number of concurrent producers")
	benchCmd.Flags().IntP("consumers", "c", 2, "Number of concurrent consumers")
	benchCmd.Flags().IntP("count", "n", 100, "Number of items each producer pushes")
	benchCmd.Flags().Float64P("rate", "r", 500, "Total push rate limit in items per second")
	benchCmd.Flags().Int("capacity", 16, "Capacity when creating a temporary queue")
	benchCmd.Flags().DurationP("wait", "w", 100*time.Millisecond, "Max time each operation may block")
}
