package workpool

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics 是工作池运行时指标的快照
type Metrics struct {
	// 总提交任务数
	TotalTasks uint64

	// 已完成任务数
	CompletedTasks uint64

	// 失败任务数
	FailedTasks uint64

	// 取消任务数
	CanceledTasks uint64

	// 当前排队任务数
	QueuedTasks uint64

	// 平均排队等待时间
	AvgWaitTime time.Duration

	// 平均执行时间
	AvgProcessTime time.Duration

	// 当前正在执行任务的协程数
	ActiveWorkers int32

	// 总工作协程数
	TotalWorkers int32
}

// metricsCollector 收集工作池的运行时指标
type metricsCollector struct {
	totalTasks     uint64
	completedTasks uint64
	failedTasks    uint64
	canceledTasks  uint64
	queuedTasks    uint64
	activeWorkers  int32
	totalWorkers   int32

	// 时间统计在锁内更新
	mu               sync.Mutex
	totalWaitTime    time.Duration
	totalProcessTime time.Duration
	finishedTasks    uint64
}

// newMetricsCollector 创建一个新的指标收集器
func newMetricsCollector() *metricsCollector {
	return &metricsCollector{}
}

// taskSubmitted 记录任务提交
func (m *metricsCollector) taskSubmitted() {
	atomic.AddUint64(&m.totalTasks, 1)
	atomic.AddUint64(&m.queuedTasks, 1)
}

// taskStarted 记录任务开始执行
func (m *metricsCollector) taskStarted(waitTime time.Duration) {
	atomic.AddUint64(&m.queuedTasks, ^uint64(0)) // 减1

	m.mu.Lock()
	m.totalWaitTime += waitTime
	m.mu.Unlock()
}

// taskCompleted 记录任务执行结束
func (m *metricsCollector) taskCompleted(processingTime time.Duration, success bool) {
	if success {
		atomic.AddUint64(&m.completedTasks, 1)
	} else {
		atomic.AddUint64(&m.failedTasks, 1)
	}

	m.mu.Lock()
	m.totalProcessTime += processingTime
	m.finishedTasks++
	m.mu.Unlock()
}

// taskCanceled 记录任务在执行前被取消
func (m *metricsCollector) taskCanceled() {
	atomic.AddUint64(&m.canceledTasks, 1)
	atomic.AddUint64(&m.queuedTasks, ^uint64(0)) // 减1
}

// workerStarted 记录一个工作协程启动
func (m *metricsCollector) workerStarted() {
	atomic.AddInt32(&m.totalWorkers, 1)
}

// workerStopped 记录一个工作协程退出
func (m *metricsCollector) workerStopped() {
	atomic.AddInt32(&m.totalWorkers, -1)
}

// workerActive 更新正在执行任务的协程数
func (m *metricsCollector) workerActive(delta int32) {
	atomic.AddInt32(&m.activeWorkers, delta)
}

// Snapshot 返回当前指标的一致性快照
func (m *metricsCollector) Snapshot() Metrics {
	snapshot := Metrics{
		TotalTasks:     atomic.LoadUint64(&m.totalTasks),
		CompletedTasks: atomic.LoadUint64(&m.completedTasks),
		FailedTasks:    atomic.LoadUint64(&m.failedTasks),
		CanceledTasks:  atomic.LoadUint64(&m.canceledTasks),
		QueuedTasks:    atomic.LoadUint64(&m.queuedTasks),
		ActiveWorkers:  atomic.LoadInt32(&m.activeWorkers),
		TotalWorkers:   atomic.LoadInt32(&m.totalWorkers),
	}

	m.mu.Lock()
	if m.finishedTasks > 0 {
		snapshot.AvgWaitTime = m.totalWaitTime / time.Duration(m.finishedTasks)
		snapshot.AvgProcessTime = m.totalProcessTime / time.Duration(m.finishedTasks)
	}
	m.mu.Unlock()

	return snapshot
}
