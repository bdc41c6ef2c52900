package queue

import "time"

const (
	// DefaultCapacity 默认队列容量
	DefaultCapacity = 16

	// DefaultPushTimeout 入队操作的默认阻塞时长
	DefaultPushTimeout = 2 * time.Second

	// DefaultPopTimeout 出队操作的默认阻塞时长
	// 较短的默认值适合轮询式消费者，需要长时间阻塞的
	// 调用方应显式传入更大的超时
	DefaultPopTimeout = 100 * time.Millisecond
)

// Options 定义队列的配置选项
type Options struct {
	// 队列最大容量，0表示零容量队列：
	// 任何阻塞入队都只会等到超时或队列关闭
	Capacity int

	// 调用Push时传入负超时所使用的默认超时时间
	PushTimeout time.Duration

	// 调用Pop时传入负超时所使用的默认超时时间
	PopTimeout time.Duration

	// 事件监听器列表
	EventListeners []EventListener
}

// Option 函数类型用于设置队列选项
type Option func(*Options)

// DefaultOptions 返回默认的队列选项
func DefaultOptions() *Options {
	return &Options{
		Capacity:       DefaultCapacity,
		PushTimeout:    DefaultPushTimeout,
		PopTimeout:     DefaultPopTimeout,
		EventListeners: nil,
	}
}

// WithCapacity 设置队列容量
// 容量在构造后固定不变，0是合法值；负值按0处理
func WithCapacity(capacity int) Option {
	return func(o *Options) {
		if capacity < 0 {
			capacity = 0
		}
		o.Capacity = capacity
	}
}

// WithPushTimeout 设置入队的默认超时
func WithPushTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout < 0 {
			timeout = 0
		}
		o.PushTimeout = timeout
	}
}

// WithPopTimeout 设置出队的默认超时
func WithPopTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout < 0 {
			timeout = 0
		}
		o.PopTimeout = timeout
	}
}

// WithEventListener 添加事件监听器
func WithEventListener(listener EventListener) Option {
	return func(o *Options) {
		if o.EventListeners == nil {
			o.EventListeners = []EventListener{listener}
		} else {
			o.EventListeners = append(o.EventListeners, listener)
		}
	}
}

// WithEventListeners 设置事件监听器列表
func WithEventListeners(listeners []EventListener) Option {
	return func(o *Options) {
		o.EventListeners = listeners
	}
}
