package queue

import (
	"time"
)

// Queue 定义有界阻塞队列的基本操作接口
// 泛型参数T代表队列中存储的元素类型
//
// 所有阻塞操作都由调用方提供的超时时间限定：
//   - timeout > 0 表示最多阻塞该时长
//   - timeout == 0 表示不阻塞，立即返回结果
//   - timeout < 0 表示使用队列配置的默认超时
type Queue[T any] interface {
	// Push 将元素添加到队列尾部
	// 队列已满时最多阻塞timeout时长等待空间
	// 可能返回ErrQueueFull、ErrOperationTimeout或ErrQueueClosed
	Push(item T, timeout time.Duration) error

	// Pop 从队列头部移除并返回元素
	// 队列为空时最多阻塞timeout时长等待元素
	// 可能返回ErrQueueEmpty、ErrOperationTimeout或ErrQueueClosed
	Pop(timeout time.Duration) (T, error)

	// TryPush 尝试将元素添加到队列尾部，但不阻塞
	// 如果队列已满，将立即返回ErrQueueFull
	TryPush(item T) error

	// TryPop 尝试从队列头部获取元素，但不阻塞
	// 如果队列为空，将立即返回ErrQueueEmpty
	TryPop() (T, error)

	// Peek 查看队列头部元素但不移除
	// 如果队列为空，将返回错误
	Peek() (T, error)

	// Size 返回队列当前元素数量
	Size() int

	// Capacity 返回队列容量
	Capacity() int

	// IsEmpty 检查队列是否为空
	IsEmpty() bool

	// IsFull 检查队列是否已满
	IsFull() bool

	// Close 关闭队列，队列不再接受任何新元素
	// 关闭是幂等且不可逆的，会唤醒所有阻塞中的调用者
	// 关闭前入队的元素仍可继续出队
	Close() error

	// IsClosed 检查队列是否已关闭
	IsClosed() bool

	// Stats 返回队列的统计信息
	Stats() Stats
}

// New 创建一个新的有界阻塞队列
func New[T any](options ...Option) Queue[T] {
	// 实际队列实现在 bounded_queue.go 中
	return NewBoundedQueue[T](options...)
}
