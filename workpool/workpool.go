package workpool

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fyerfyer/fyer-queue/queue"
)

// WorkPoolStatus 工作池的状态
type WorkPoolStatus int

const (
	// StatusIdle 空闲状态
	StatusIdle WorkPoolStatus = iota
	// StatusRunning 运行状态
	StatusRunning
	// StatusShuttingDown 正在关闭
	StatusShuttingDown
	// StatusStopped 已停止
	StatusStopped
)

// String 返回工作池状态的字符串表示
func (s WorkPoolStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusShuttingDown:
		return "ShuttingDown"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// WorkPool 管理一组固定数量的工作协程，处理提交的任务
//
// 任务队列是一个有界阻塞队列：队列容量就是工作池的准入控制，
// 队列满时Submit按配置阻塞或拒绝。关闭时关闭任务队列，
// 工作协程排空剩余任务后观察到队列关闭并退出
type WorkPool struct {
	// 工作池配置
	config WorkPoolConfig

	// 任务队列
	tasks queue.Queue[*taskHandle]

	// 状态控制
	status     WorkPoolStatus
	statusLock sync.RWMutex

	// 工作协程控制
	workerWg sync.WaitGroup

	// 指标收集
	metrics *metricsCollector

	// 工作池上下文，用于全局取消
	ctx    context.Context
	cancel context.CancelFunc
}

// New 创建一个新的工作池
func New(options ...WorkPoolOption) *WorkPool {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkPool{
		config:  config,
		status:  StatusIdle,
		metrics: newMetricsCollector(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start 启动工作池，开始处理任务
// 工作池是一次性的：任务队列关闭后不可重新打开，
// 已停止的工作池不能再次启动
func (wp *WorkPool) Start() error {
	wp.statusLock.Lock()
	defer wp.statusLock.Unlock()

	switch wp.status {
	case StatusRunning:
		return errors.New("work pool already running")
	case StatusShuttingDown:
		return errors.New("work pool is shutting down")
	case StatusStopped:
		return errors.New("work pool already stopped")
	}

	wp.status = StatusRunning
	wp.tasks = queue.New[*taskHandle](queue.WithCapacity(wp.config.queueCapacity))

	for i := 0; i < wp.config.workers; i++ {
		wp.workerWg.Add(1)
		wp.metrics.workerStarted()
		go wp.runWorker()
	}

	if wp.config.logLevel >= LogLevelInfo {
		log.Printf("WorkPool started with %d workers (queue capacity: %d)",
			wp.config.workers, wp.config.queueCapacity)
	}

	return nil
}

// Shutdown 优雅关闭工作池
// 关闭任务队列后不再接受新任务，已入队任务会被排空执行，
// 上下文到期时取消仍在执行中的任务
func (wp *WorkPool) Shutdown(ctx context.Context) error {
	wp.statusLock.Lock()
	if wp.status == StatusStopped || wp.status == StatusShuttingDown {
		wp.statusLock.Unlock()
		return nil
	}
	if wp.status == StatusIdle {
		wp.status = StatusStopped
		wp.statusLock.Unlock()
		return nil
	}
	wp.status = StatusShuttingDown
	wp.statusLock.Unlock()

	if wp.config.logLevel >= LogLevelInfo {
		log.Printf("WorkPool shutting down, draining %d queued tasks...", wp.tasks.Size())
	}

	// 关闭队列：之后的Submit被拒绝，工作协程排空剩余任务后退出
	_ = wp.tasks.Close()

	doneCh := make(chan struct{})
	go func() {
		wp.workerWg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
		// 所有工作协程已退出
	case <-ctx.Done():
		// 等待超时，取消执行中的任务
		wp.cancel()
		if wp.config.logLevel >= LogLevelError {
			log.Printf("WorkPool shutdown context expired, %d tasks still queued",
				wp.tasks.Size())
		}
		return ctx.Err()
	}

	wp.statusLock.Lock()
	wp.status = StatusStopped
	wp.statusLock.Unlock()

	if wp.config.logLevel >= LogLevelInfo {
		log.Printf("WorkPool shutdown complete")
	}

	return nil
}

// Submit 提交一个任务到工作池
// 任务队列满时最多阻塞配置的提交超时时长，仍无空位则返回错误
func (wp *WorkPool) Submit(task Task, options ...TaskOption) (TaskHandle, error) {
	wp.statusLock.RLock()
	if wp.status != StatusRunning {
		status := wp.status
		wp.statusLock.RUnlock()
		return nil, fmt.Errorf("work pool is not running, current status: %s", status)
	}
	wp.statusLock.RUnlock()

	// 合并默认超时选项
	if wp.config.defaultTaskTimeout > 0 {
		hasTimeout := false
		for _, opt := range options {
			tc := &taskConfig{}
			opt(tc)
			if tc.timeout > 0 {
				hasTimeout = true
				break
			}
		}
		if !hasTimeout {
			options = append(options, WithTimeout(wp.config.defaultTaskTimeout))
		}
	}

	taskID := uuid.New().String()
	handle := newTaskHandle(taskID, task, wp.ctx, options...)

	if err := wp.tasks.Push(handle, wp.config.submitTimeout); err != nil {
		handle.cancel()
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	wp.metrics.taskSubmitted()

	if wp.config.logLevel >= LogLevelDebug {
		log.Printf("Task submitted: %s", taskID)
	}

	return handle, nil
}

// Status 返回工作池的当前状态
func (wp *WorkPool) Status() WorkPoolStatus {
	wp.statusLock.RLock()
	defer wp.statusLock.RUnlock()
	return wp.status
}

// Metrics 返回工作池的指标快照
func (wp *WorkPool) Metrics() Metrics {
	return wp.metrics.Snapshot()
}

// WorkerCount 返回当前工作协程数量
func (wp *WorkPool) WorkerCount() int {
	return int(wp.metrics.Snapshot().TotalWorkers)
}

// QueueSize 返回当前队列中等待的任务数量
func (wp *WorkPool) QueueSize() int {
	wp.statusLock.RLock()
	defer wp.statusLock.RUnlock()
	if wp.tasks == nil {
		return 0
	}
	return wp.tasks.Size()
}

// runWorker 工作协程主循环
// 循环从任务队列出队执行，队列关闭且排空后退出
func (wp *WorkPool) runWorker() {
	defer func() {
		wp.metrics.workerStopped()
		wp.workerWg.Done()
	}()

	for {
		handle, err := wp.tasks.Pop(wp.config.popInterval)
		if err != nil {
			if errors.Is(err, queue.ErrQueueClosed) {
				return
			}
			// 本轮等待没有任务，检查全局取消后继续
			if wp.ctx.Err() != nil {
				return
			}
			continue
		}

		wp.executeTask(handle)
	}
}

// executeTask 执行单个任务并记录指标
func (wp *WorkPool) executeTask(handle *taskHandle) {
	// 已取消的任务直接跳过
	if !handle.setRunning() {
		wp.metrics.taskCanceled()
		if wp.config.logLevel >= LogLevelDebug {
			log.Printf("Task %s skipped: canceled before execution", handle.id)
		}
		return
	}

	wp.metrics.taskStarted(handle.waitTime())
	wp.metrics.workerActive(1)
	defer wp.metrics.workerActive(-1)

	startTime := time.Now()
	result, err := handle.task.Execute(handle.ctx)
	processingTime := time.Since(startTime)

	handle.setCompleted(result, err)
	wp.metrics.taskCompleted(processingTime, err == nil)

	if wp.config.logLevel >= LogLevelDebug {
		if err != nil {
			log.Printf("Task %s completed with error in %v: %v",
				handle.id, processingTime, err)
		} else {
			log.Printf("Task %s completed successfully in %v",
				handle.id, processingTime)
		}
	}
}
