package queueservice

import (
	"errors"
	"time"

	"github.com/fyerfyer/fyer-queue/queue"
)

var (
	// ErrQueueNotFound 表示请求的队列不存在
	ErrQueueNotFound = errors.New("queue not found")

	// ErrQueueExists 表示队列已存在
	ErrQueueExists = errors.New("queue already exists")
)

// QueueOptions 表示创建队列时的选项
type QueueOptions struct {
	// 队列容量，0表示零容量队列
	Capacity int

	// 入队操作的默认超时时间
	PushTimeout time.Duration

	// 出队操作的默认超时时间
	PopTimeout time.Duration
}

// QueueInfo 包含队列的基本信息
type QueueInfo struct {
	// 队列名称
	Name string

	// 队列是否已关闭
	Closed bool

	// 队列统计信息
	Stats queue.Stats
}

// Service 定义队列服务接口
type Service interface {
	// CreateQueue 创建一个新队列
	CreateQueue(name string, opts QueueOptions) error

	// GetQueue 获取指定名称的队列
	GetQueue(name string) (queue.Queue[string], error)

	// ListQueues 列出所有队列
	ListQueues() []QueueInfo

	// Enqueue 向指定队列添加项目，队列满时最多阻塞wait时长
	Enqueue(queueName, item string, wait time.Duration) error

	// Dequeue 从指定队列获取项目，队列空时最多阻塞wait时长
	Dequeue(queueName string, wait time.Duration) (string, error)

	// CloseQueue 关闭指定队列，之后入队被拒绝，剩余项目仍可出队
	CloseQueue(queueName string) error

	// QueueStats 获取队列统计信息
	QueueStats(queueName string) (queue.Stats, error)

	// Snapshot 返回队列的可序列化快照
	Snapshot(queueName string) (QueueData, error)

	// DeleteQueue 关闭并删除队列
	DeleteQueue(queueName string) error

	// Close 关闭所有队列
	Close() error
}
