package queueservice

import (
	"fmt"
	"sync"
	"time"

	"github.com/fyerfyer/fyer-queue/queue"
)

// InMemoryService 实现了Service接口的内存存储版本
type InMemoryService struct {
	// 队列名称到队列实例的映射
	queues map[string]queueEntry
	// 保护映射的互斥锁
	mu sync.RWMutex
}

// queueEntry 包含队列及其元数据
type queueEntry struct {
	// 队列实例
	q queue.Queue[string]
	// 创建时间
	createdAt time.Time
}

// NewInMemoryService 创建一个新的内存队列服务
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		queues: make(map[string]queueEntry),
	}
}

// CreateQueue 创建一个新队列
func (s *InMemoryService) CreateQueue(name string, opts QueueOptions) error {
	if opts.Capacity < 0 {
		return fmt.Errorf("capacity %d: %w", opts.Capacity, queue.ErrInvalidCapacity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.queues[name]; exists {
		return ErrQueueExists
	}

	queueOpts := []queue.Option{
		queue.WithCapacity(opts.Capacity),
	}
	if opts.PushTimeout > 0 {
		queueOpts = append(queueOpts, queue.WithPushTimeout(opts.PushTimeout))
	}
	if opts.PopTimeout > 0 {
		queueOpts = append(queueOpts, queue.WithPopTimeout(opts.PopTimeout))
	}

	s.queues[name] = queueEntry{
		q:         queue.New[string](queueOpts...),
		createdAt: time.Now(),
	}

	return nil
}

// GetQueue 获取指定名称的队列
func (s *InMemoryService) GetQueue(name string) (queue.Queue[string], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.queues[name]
	if !exists {
		return nil, ErrQueueNotFound
	}

	return entry.q, nil
}

// ListQueues 列出所有队列
func (s *InMemoryService) ListQueues() []QueueInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]QueueInfo, 0, len(s.queues))
	for name, entry := range s.queues {
		result = append(result, QueueInfo{
			Name:   name,
			Closed: entry.q.IsClosed(),
			Stats:  entry.q.Stats(),
		})
	}

	return result
}

// Enqueue 向指定队列添加项目
// wait为0时不阻塞，队列满立即返回错误
func (s *InMemoryService) Enqueue(queueName, item string, wait time.Duration) error {
	q, err := s.GetQueue(queueName)
	if err != nil {
		return err
	}

	return q.Push(item, wait)
}

// Dequeue 从指定队列获取项目
// wait为0时不阻塞，队列空立即返回错误
func (s *InMemoryService) Dequeue(queueName string, wait time.Duration) (string, error) {
	q, err := s.GetQueue(queueName)
	if err != nil {
		return "", err
	}

	return q.Pop(wait)
}

// CloseQueue 关闭指定队列
func (s *InMemoryService) CloseQueue(queueName string) error {
	q, err := s.GetQueue(queueName)
	if err != nil {
		return err
	}

	return q.Close()
}

// QueueStats 获取队列统计信息
func (s *InMemoryService) QueueStats(queueName string) (queue.Stats, error) {
	q, err := s.GetQueue(queueName)
	if err != nil {
		return queue.Stats{}, err
	}

	return q.Stats(), nil
}

// Snapshot 返回队列的可序列化快照
func (s *InMemoryService) Snapshot(queueName string) (QueueData, error) {
	s.mu.RLock()
	entry, exists := s.queues[queueName]
	s.mu.RUnlock()

	if !exists {
		return QueueData{}, ErrQueueNotFound
	}

	stats := entry.q.Stats()
	return QueueData{
		Name:      queueName,
		Capacity:  stats.Capacity,
		Size:      stats.Size,
		Closed:    entry.q.IsClosed(),
		CreatedAt: entry.createdAt,
		ClosedAt:  stats.ClosedAt,
	}, nil
}

// DeleteQueue 关闭并删除队列
func (s *InMemoryService) DeleteQueue(queueName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.queues[queueName]
	if !exists {
		return ErrQueueNotFound
	}

	// 先关闭再删除，唤醒所有阻塞在该队列上的调用者
	_ = entry.q.Close()
	delete(s.queues, queueName)

	return nil
}

// Close 关闭所有队列
func (s *InMemoryService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.queues {
		_ = entry.q.Close()
	}

	s.queues = make(map[string]queueEntry)
	return nil
}
