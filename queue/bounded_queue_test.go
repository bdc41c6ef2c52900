package queue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBoundedQueue_BasicOperations(t *testing.T) {
	q := New[int](WithCapacity(5))

	// 测试入队和出队
	for i := 1; i <= 3; i++ {
		if err := q.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d) failed: %v", i, err)
		}
	}

	// 检查队列大小
	if q.Size() != 3 {
		t.Fatalf("Expected size 3, got %d", q.Size())
	}

	// 检查Peek
	if val, err := q.Peek(); err != nil || val != 1 {
		t.Fatalf("Peek() expected 1, got %v (err: %v)", val, err)
	}

	// 测试出队顺序
	for i := 1; i <= 3; i++ {
		val, err := q.TryPop()
		if err != nil {
			t.Fatalf("TryPop() failed: %v", err)
		}
		if val != i {
			t.Fatalf("Expected %d, got %d", i, val)
		}
	}

	// 检查队列是否为空
	if !q.IsEmpty() {
		t.Fatal("Queue should be empty")
	}

	// 测试空队列出队
	_, err := q.TryPop()
	if !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Expected ErrQueueEmpty, got %v", err)
	}
}

func TestBoundedQueue_BoundedCapacity(t *testing.T) {
	capacity := 3
	q := New[string](WithCapacity(capacity))

	// 填充队列
	for i := 0; i < capacity; i++ {
		if err := q.TryPush("item" + string(rune('A'+i))); err != nil {
			t.Fatalf("TryPush failed: %v", err)
		}
	}

	// 检查队列是否已满
	if !q.IsFull() {
		t.Fatal("Queue should be full")
	}

	// 尝试向已满队列添加元素
	err := q.TryPush("overflow")
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Expected ErrQueueFull, got %v", err)
	}

	// 出队一个元素
	val, err := q.TryPop()
	if err != nil {
		t.Fatalf("TryPop failed: %v", err)
	}
	if val != "itemA" {
		t.Fatalf("Expected itemA, got %v", val)
	}

	// 现在队列不应该满了
	if q.IsFull() {
		t.Fatal("Queue should not be full")
	}

	// 应该可以再添加一个元素
	if err := q.TryPush("newItem"); err != nil {
		t.Fatalf("TryPush failed: %v", err)
	}
}

// 阻塞入队在队列持续满载时应返回超时而不是简单的满错误
func TestBoundedQueue_PushTimeout(t *testing.T) {
	q := New[string](WithCapacity(1))

	if err := q.Push("a", 100*time.Millisecond); err != nil {
		t.Fatalf("Push(a) failed: %v", err)
	}

	// 非阻塞入队：立即报告队列已满
	if err := q.TryPush("b"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Expected ErrQueueFull, got %v", err)
	}

	// 阻塞入队：等满50ms后报告超时
	start := time.Now()
	err := q.Push("b", 50*time.Millisecond)
	if !errors.Is(err, ErrOperationTimeout) {
		t.Fatalf("Expected ErrOperationTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("Push returned before timeout elapsed: %v", elapsed)
	}

	// 腾出空间后入队应当成功
	val, err := q.Pop(time.Millisecond)
	if err != nil || val != "a" {
		t.Fatalf("Pop() expected a, got %v (err: %v)", val, err)
	}

	if err := q.Push("b", 50*time.Millisecond); err != nil {
		t.Fatalf("Push(b) after pop failed: %v", err)
	}
}

func TestBoundedQueue_PopTimeout(t *testing.T) {
	q := New[int](WithCapacity(5))

	start := time.Now()
	_, err := q.Pop(50 * time.Millisecond)
	if !errors.Is(err, ErrOperationTimeout) {
		t.Fatalf("Expected ErrOperationTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("Pop returned before timeout elapsed: %v", elapsed)
	}
}

// 零容量是合法的：没有任何槽位，阻塞入队只会超时或观察到关闭
func TestBoundedQueue_ZeroCapacity(t *testing.T) {
	q := New[int](WithCapacity(0))

	if q.Capacity() != 0 {
		t.Fatalf("Expected capacity 0, got %d", q.Capacity())
	}
	if !q.IsFull() {
		t.Fatal("Zero-capacity queue should always be full")
	}

	if err := q.TryPush(1); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Expected ErrQueueFull, got %v", err)
	}

	if err := q.Push(1, 30*time.Millisecond); !errors.Is(err, ErrOperationTimeout) {
		t.Fatalf("Expected ErrOperationTimeout, got %v", err)
	}

	_, err := q.TryPop()
	if !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Expected ErrQueueEmpty, got %v", err)
	}

	// 关闭后阻塞入队应立即观察到关闭
	if err := q.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := q.Push(1, time.Second); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
}

// 关闭的终结性：关闭后任何入队都不再成功，剩余元素可以排空
func TestBoundedQueue_CloseTerminality(t *testing.T) {
	q := New[int](WithCapacity(10))

	for i := 1; i <= 3; i++ {
		if err := q.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d) failed: %v", i, err)
		}
	}

	if err := q.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if !q.IsClosed() {
		t.Fatal("Queue should report closed")
	}

	// 关闭后入队必须失败
	if err := q.TryPush(4); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
	if err := q.Push(4, 50*time.Millisecond); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}

	// 排空策略：关闭前的元素仍可出队
	for i := 1; i <= 3; i++ {
		val, err := q.Pop(time.Millisecond)
		if err != nil {
			t.Fatalf("Pop() failed: %v", err)
		}
		if val != i {
			t.Fatalf("Expected %d, got %d", i, val)
		}
	}

	// 队列空且关闭，出队应返回ErrQueueClosed
	if _, err := q.TryPop(); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
	if _, err := q.Pop(time.Millisecond); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
	if _, err := q.Peek(); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
}

func TestBoundedQueue_CloseEmptyQueue(t *testing.T) {
	q := New[string](WithCapacity(10))

	if err := q.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if _, err := q.Pop(time.Millisecond); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
	if err := q.Push("x", time.Millisecond); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
}

// 幂等关闭：重复关闭是安全的无操作
func TestBoundedQueue_IdempotentClose(t *testing.T) {
	q := New[int](WithCapacity(2))

	if err := q.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
	if !q.IsClosed() {
		t.Fatal("Queue should remain closed")
	}
}

// 关闭广播：所有阻塞中的生产者和消费者都应在关闭后立即返回，
// 而不是等到各自的超时耗尽
func TestBoundedQueue_BroadcastOnClose(t *testing.T) {
	const waiters = 4
	longTimeout := 5 * time.Second

	full := New[int](WithCapacity(1))
	if err := full.TryPush(0); err != nil {
		t.Fatalf("TryPush failed: %v", err)
	}
	empty := New[int](WithCapacity(1))

	var wg sync.WaitGroup
	var closedErrs atomic.Int32

	for i := 0; i < waiters; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := full.Push(1, longTimeout); errors.Is(err, ErrQueueClosed) {
				closedErrs.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := empty.Pop(longTimeout); errors.Is(err, ErrQueueClosed) {
				closedErrs.Add(1)
			}
		}()
	}

	// 给等待者进入阻塞的时间
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	if err := full.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := empty.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	wg.Wait()

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Waiters took %v to observe close, expected prompt return", elapsed)
	}
	if got := closedErrs.Load(); got != 2*waiters {
		t.Fatalf("Expected %d ErrQueueClosed results, got %d", 2*waiters, got)
	}
}

// 无丢失唤醒：阻塞中的消费者必须观察到新入队的元素，
// 而不是等到超时后报告队列为空
func TestBoundedQueue_NoLostWakeup(t *testing.T) {
	q := New[int](WithCapacity(4))

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = q.TryPush(42)
	}()

	start := time.Now()
	val, err := q.Pop(2 * time.Second)
	if err != nil {
		t.Fatalf("Pop() failed: %v", err)
	}
	if val != 42 {
		t.Fatalf("Expected 42, got %d", val)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Pop took %v, wakeup was lost", elapsed)
	}
}

// 容量不变式：任何可观察瞬间队列大小都不超过容量
func TestBoundedQueue_ConcurrentCapacityInvariant(t *testing.T) {
	const (
		capacity  = 8
		producers = 4
		consumers = 4
		perWorker = 200
	)

	var overflow atomic.Bool
	q := New[int](
		WithCapacity(capacity),
		WithEventListener(func(evt Event) {
			if evt.Size > capacity {
				overflow.Store(true)
			}
		}),
	)

	var wg sync.WaitGroup
	var pushSum, popSum atomic.Int64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				v := base*perWorker + i
				if err := q.Push(v, 5*time.Second); err != nil {
					t.Errorf("Push(%d) failed: %v", v, err)
					return
				}
				pushSum.Add(int64(v))
			}
		}(p)
	}

	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				v, err := q.Pop(5 * time.Second)
				if err != nil {
					t.Errorf("Pop() failed: %v", err)
					return
				}
				popSum.Add(int64(v))
			}
		}()
	}

	wg.Wait()

	if overflow.Load() {
		t.Fatal("Queue size exceeded capacity")
	}
	if pushSum.Load() != popSum.Load() {
		t.Fatalf("Sum mismatch: pushed %d, popped %d", pushSum.Load(), popSum.Load())
	}
	if !q.IsEmpty() {
		t.Fatalf("Queue should be empty, size %d", q.Size())
	}
}

// FIFO性质：单生产者场景下元素按入队顺序出队
func TestBoundedQueue_SingleProducerFIFO(t *testing.T) {
	const count = 100
	q := New[int](WithCapacity(4))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < count; i++ {
			if err := q.Push(i, 5*time.Second); err != nil {
				t.Errorf("Push(%d) failed: %v", i, err)
				return
			}
		}
	}()

	for i := 0; i < count; i++ {
		v, err := q.Pop(5 * time.Second)
		if err != nil {
			t.Fatalf("Pop() failed at %d: %v", i, err)
		}
		if v != i {
			t.Fatalf("FIFO violated: expected %d, got %d", i, v)
		}
	}
	<-done
}

// 负超时使用队列配置的默认超时
func TestBoundedQueue_DefaultTimeouts(t *testing.T) {
	q := New[int](
		WithCapacity(1),
		WithPushTimeout(30*time.Millisecond),
		WithPopTimeout(30*time.Millisecond),
	)

	start := time.Now()
	if _, err := q.Pop(-1); !errors.Is(err, ErrOperationTimeout) {
		t.Fatalf("Expected ErrOperationTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond || elapsed > time.Second {
		t.Fatalf("Default pop timeout not honored: %v", elapsed)
	}

	if err := q.TryPush(1); err != nil {
		t.Fatalf("TryPush failed: %v", err)
	}

	start = time.Now()
	if err := q.Push(2, -1); !errors.Is(err, ErrOperationTimeout) {
		t.Fatalf("Expected ErrOperationTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond || elapsed > time.Second {
		t.Fatalf("Default push timeout not honored: %v", elapsed)
	}
}

func TestBoundedQueue_Events(t *testing.T) {
	var events []EventType
	q := New[string](
		WithCapacity(1),
		WithEventListener(func(evt Event) {
			events = append(events, evt.Type)
		}),
	)

	if err := q.TryPush("a"); err != nil {
		t.Fatalf("TryPush failed: %v", err)
	}
	if _, err := q.TryPop(); err != nil {
		t.Fatalf("TryPop failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// 容量1的队列在入队后既满又触发入队事件
	want := []EventType{EventFull, EventPush, EventEmpty, EventPop, EventClose}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d (%v)", len(want), len(events), events)
	}
	for i, typ := range want {
		if events[i] != typ {
			t.Fatalf("Event %d: expected %v, got %v", i, typ, events[i])
		}
	}
}

func TestBoundedQueue_Stats(t *testing.T) {
	q := New[int](WithCapacity(1))

	_ = q.TryPush(1)
	_ = q.TryPush(2) // 拒绝：队列已满
	_ = q.Push(3, 10*time.Millisecond)
	_, _ = q.TryPop()
	_, _ = q.Pop(10 * time.Millisecond)

	stats := q.Stats()
	if stats.Pushed != 1 {
		t.Errorf("Expected 1 pushed, got %d", stats.Pushed)
	}
	if stats.Popped != 1 {
		t.Errorf("Expected 1 popped, got %d", stats.Popped)
	}
	if stats.Rejected != 1 {
		t.Errorf("Expected 1 rejected, got %d", stats.Rejected)
	}
	if stats.PushTimeouts != 1 {
		t.Errorf("Expected 1 push timeout, got %d", stats.PushTimeouts)
	}
	if stats.PopTimeouts != 1 {
		t.Errorf("Expected 1 pop timeout, got %d", stats.PopTimeouts)
	}
	if stats.Capacity != 1 {
		t.Errorf("Expected capacity 1, got %d", stats.Capacity)
	}
	if stats.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	_ = q.Close()
	if q.Stats().ClosedAt.IsZero() {
		t.Error("ClosedAt should be set after close")
	}
}

func BenchmarkBoundedQueue_PushPop(b *testing.B) {
	q := New[int](WithCapacity(1024))

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := q.Push(1, time.Second); err != nil {
				b.Errorf("Push failed: %v", err)
				return
			}
			if _, err := q.Pop(time.Second); err != nil {
				b.Errorf("Pop failed: %v", err)
				return
			}
		}
	})
}
