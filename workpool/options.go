package workpool

import (
	"time"
)

// WorkPoolOption 是用于配置工作池的函数选项
type WorkPoolOption func(*WorkPoolConfig)

// WorkPoolConfig 包含工作池的所有配置选项
type WorkPoolConfig struct {
	// 工作协程数量，启动后固定不变
	workers int

	// 任务队列容量，队列满时提交操作会阻塞或被拒绝
	queueCapacity int

	// 任务的默认超时时间
	defaultTaskTimeout time.Duration

	// 提交任务时允许的最大阻塞时长，0表示队列满立即拒绝
	submitTimeout time.Duration

	// 工作协程单次等待任务的时长，到期后重新检查池状态
	popInterval time.Duration

	// 日志级别
	logLevel LogLevel
}

// LogLevel 表示日志级别
type LogLevel int

const (
	// LogLevelOff 关闭日志
	LogLevelOff LogLevel = iota
	// LogLevelError 只记录错误
	LogLevelError
	// LogLevelInfo 记录信息和错误
	LogLevelInfo
	// LogLevelDebug 记录所有信息，包括调试信息
	LogLevelDebug
)

// DefaultConfig 返回工作池的默认配置
func DefaultConfig() WorkPoolConfig {
	return WorkPoolConfig{
		workers:            4,                      // 默认工作协程数
		queueCapacity:      64,                     // 任务队列容量
		defaultTaskTimeout: 0,                      // 默认无超时
		submitTimeout:      0,                      // 默认非阻塞提交
		popInterval:        250 * time.Millisecond, // 等待任务的轮询间隔
		logLevel:           LogLevelError,          // 默认只记录错误
	}
}

// WithWorkers 设置工作池的协程数量
func WithWorkers(count int) WorkPoolOption {
	return func(config *WorkPoolConfig) {
		if count > 0 {
			config.workers = count
		}
	}
}

// WithQueueCapacity 设置任务队列容量
func WithQueueCapacity(capacity int) WorkPoolOption {
	return func(config *WorkPoolConfig) {
		if capacity > 0 {
			config.queueCapacity = capacity
		}
	}
}

// WithDefaultTaskTimeout 设置任务的默认超时时间
func WithDefaultTaskTimeout(timeout time.Duration) WorkPoolOption {
	return func(config *WorkPoolConfig) {
		if timeout >= 0 {
			config.defaultTaskTimeout = timeout
		}
	}
}

// WithSubmitTimeout 设置提交任务时允许的最大阻塞时长
// 队列满时Submit最多阻塞该时长等待空位
func WithSubmitTimeout(timeout time.Duration) WorkPoolOption {
	return func(config *WorkPoolConfig) {
		if timeout >= 0 {
			config.submitTimeout = timeout
		}
	}
}

// WithLogLevel 设置日志级别
func WithLogLevel(level LogLevel) WorkPoolOption {
	return func(config *WorkPoolConfig) {
		config.logLevel = level
	}
}
