package queue

import (
	"sync"
	"time"
)

// BoundedQueue 是Queue接口的具体实现
// 内部是一个容量固定的环形缓冲区，缓冲区和开闭状态
// 由同一把互斥锁保护，构成单一临界区
//
// 两个等待条件用"关闭后重建"的广播通道实现：条件可能成立时
// 关闭当前通道唤醒全部等待者，等待者重新加锁后再次检查谓词，
// 竞争同一空位/元素的等待者中只有一个会胜出
// 队列关闭后两个通道保持关闭状态，使所有后续等待立即返回
type BoundedQueue[T any] struct {
	// 队列选项
	opts *Options

	// 环形缓冲区，长度等于容量
	data []T

	// 队列头部索引
	head int

	// 队列尾部索引
	tail int

	// 当前队列大小
	size int

	// 队列是否已关闭，关闭后不可逆
	closed bool

	// 保护以上全部字段的互斥锁
	mu sync.Mutex

	// 出现空位或队列关闭时广播，唤醒阻塞的生产者
	notFull chan struct{}

	// 出现元素或队列关闭时广播，唤醒阻塞的消费者
	notEmpty chan struct{}

	// 事件发射器
	events *EventEmitter

	// 统计信息，全部字段在锁内更新
	stats Stats
}

// NewBoundedQueue 创建一个新的有界阻塞队列实例
// 容量在构造时固定，0是合法容量：没有任何槽位，
// 所有阻塞入队都只会等到超时或队列关闭
func NewBoundedQueue[T any](options ...Option) Queue[T] {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(opts)
	}

	if opts.Capacity < 0 {
		opts.Capacity = 0
	}

	return &BoundedQueue[T]{
		opts:     opts,
		data:     make([]T, opts.Capacity),
		notFull:  make(chan struct{}),
		notEmpty: make(chan struct{}),
		events:   NewEventEmitter(opts.EventListeners),
		stats:    Stats{CreatedAt: time.Now(), Capacity: opts.Capacity},
	}
}

// Push 将元素添加到队列尾部，队列已满时最多阻塞timeout时长
//
// timeout == 0 时不阻塞：队列已满立即返回ErrQueueFull
// timeout < 0 时使用队列配置的默认入队超时
// 等待期间队列关闭返回ErrQueueClosed，等待超时返回ErrOperationTimeout
func (q *BoundedQueue[T]) Push(item T, timeout time.Duration) error {
	q.mu.Lock()

	if timeout < 0 {
		timeout = q.opts.PushTimeout
	}

	if q.closed {
		q.stats.Rejected++
		return q.errorLocked(ErrQueueClosed)
	}

	if q.size < q.opts.Capacity {
		q.insertLocked(item)
		q.mu.Unlock()
		return nil
	}

	if timeout == 0 {
		q.stats.Rejected++
		return q.errorLocked(ErrQueueFull)
	}

	q.stats.PushBlocks++

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for q.size >= q.opts.Capacity && !q.closed {
		wait := q.notFull
		q.mu.Unlock()

		select {
		case <-wait:
			q.mu.Lock()
		case <-timer.C:
			// 超时裁决以重新加锁后的最终状态为准：
			// 关闭优先于超时，空间恰好出现则正常入队
			q.mu.Lock()
			if q.closed {
				q.stats.Rejected++
				return q.errorLocked(ErrQueueClosed)
			}
			if q.size >= q.opts.Capacity {
				q.stats.PushTimeouts++
				return q.errorLocked(ErrOperationTimeout)
			}
		}
	}

	if q.closed {
		q.stats.Rejected++
		return q.errorLocked(ErrQueueClosed)
	}

	q.insertLocked(item)
	q.mu.Unlock()
	return nil
}

// Pop 从队列头部移除并返回元素，队列为空时最多阻塞timeout时长
//
// timeout == 0 时不阻塞：队列为空立即返回ErrQueueEmpty
// timeout < 0 时使用队列配置的默认出队超时
//
// 排空策略：队列关闭后只要还有元素就允许出队，
// 队列为空且已关闭时返回ErrQueueClosed
func (q *BoundedQueue[T]) Pop(timeout time.Duration) (T, error) {
	var zero T

	q.mu.Lock()

	if timeout < 0 {
		timeout = q.opts.PopTimeout
	}

	if q.size > 0 {
		item := q.removeLocked()
		q.mu.Unlock()
		return item, nil
	}

	if q.closed {
		return zero, q.errorLocked(ErrQueueClosed)
	}

	if timeout == 0 {
		return zero, q.errorLocked(ErrQueueEmpty)
	}

	q.stats.PopBlocks++

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for q.size == 0 && !q.closed {
		wait := q.notEmpty
		q.mu.Unlock()

		select {
		case <-wait:
			q.mu.Lock()
		case <-timer.C:
			q.mu.Lock()
			if q.size == 0 {
				if q.closed {
					return zero, q.errorLocked(ErrQueueClosed)
				}
				q.stats.PopTimeouts++
				return zero, q.errorLocked(ErrOperationTimeout)
			}
		}
	}

	if q.size == 0 {
		// 循环只会因"已关闭且无元素"走到这里
		return zero, q.errorLocked(ErrQueueClosed)
	}

	item := q.removeLocked()
	q.mu.Unlock()
	return item, nil
}

// TryPush 尝试将元素添加到队列，但不阻塞等待
func (q *BoundedQueue[T]) TryPush(item T) error {
	return q.Push(item, 0)
}

// TryPop 尝试从队列获取元素，但不阻塞等待
func (q *BoundedQueue[T]) TryPop() (T, error) {
	return q.Pop(0)
}

// Peek 查看队列头部元素但不移除
func (q *BoundedQueue[T]) Peek() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.size == 0 {
		if q.closed {
			return zero, ErrQueueClosed
		}
		return zero, ErrQueueEmpty
	}

	return q.data[q.head], nil
}

// Size 返回队列当前元素数量
func (q *BoundedQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Capacity 返回队列容量
func (q *BoundedQueue[T]) Capacity() int {
	return q.opts.Capacity
}

// IsEmpty 检查队列是否为空
func (q *BoundedQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size == 0
}

// IsFull 检查队列是否已满
func (q *BoundedQueue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size >= q.opts.Capacity
}

// Close 关闭队列
// 关闭是幂等且不可逆的：广播唤醒两个条件上的全部等待者，
// 之后任何入队都返回ErrQueueClosed，剩余元素仍可出队
func (q *BoundedQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	q.stats.ClosedAt = time.Now()

	close(q.notFull)
	close(q.notEmpty)

	q.events.Emit(Event{Type: EventClose, Size: q.size})
	return nil
}

// IsClosed 检查队列是否已关闭
func (q *BoundedQueue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Stats 返回队列的统计信息
func (q *BoundedQueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	// 复制一份统计信息，避免外部修改
	statsCopy := q.stats
	return statsCopy
}

// 内部方法 - 在锁内写入元素并唤醒消费者
func (q *BoundedQueue[T]) insertLocked(item T) {
	q.data[q.tail] = item
	q.tail = (q.tail + 1) % len(q.data)
	q.size++

	q.stats.Pushed++
	q.stats.Size = q.size

	q.wakeLocked(&q.notEmpty)

	if q.size >= q.opts.Capacity {
		q.events.Emit(Event{Type: EventFull, Size: q.size})
	}
	q.events.Emit(Event{Type: EventPush, Item: item, Size: q.size})
}

// 内部方法 - 在锁内取出头部元素并唤醒生产者
func (q *BoundedQueue[T]) removeLocked() T {
	var zero T
	item := q.data[q.head]
	q.data[q.head] = zero // 清空引用，帮助GC
	q.head = (q.head + 1) % len(q.data)
	q.size--

	q.stats.Popped++
	q.stats.Size = q.size

	q.wakeLocked(&q.notFull)

	if q.size == 0 {
		q.events.Emit(Event{Type: EventEmpty, Size: 0})
	}
	q.events.Emit(Event{Type: EventPop, Item: item, Size: q.size})
	return item
}

// 内部方法 - 广播一个等待条件：关闭当前通道并换上新通道
// 队列关闭后两个通道已永久关闭，不再重建
func (q *BoundedQueue[T]) wakeLocked(ch *chan struct{}) {
	if q.closed {
		return
	}
	close(*ch)
	*ch = make(chan struct{})
}

// 内部方法 - 在锁内记录错误事件并释放锁
func (q *BoundedQueue[T]) errorLocked(err error) error {
	q.events.Emit(Event{Type: EventError, Err: err, Size: q.size})
	q.mu.Unlock()
	return err
}
