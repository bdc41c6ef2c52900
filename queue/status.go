package queue

import "errors"

// Status 表示一次队列操作的结果状态
// 与包内的哨兵错误一一对应，便于调用方按状态分支
// 而不必逐个比较错误值
type Status int

const (
	// StatusOK 操作成功
	StatusOK Status = iota

	// StatusFull 容量错误——对已满队列执行非阻塞入队
	StatusFull

	// StatusEmpty 容量错误——对空队列执行非阻塞出队
	StatusEmpty

	// StatusTimeout 超时错误——阻塞等待期间条件始终未满足
	StatusTimeout

	// StatusClosed 访问错误——对已关闭队列执行操作
	StatusClosed
)

// String 返回状态码的可读文本
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFull:
		return "queue is full"
	case StatusEmpty:
		return "queue is empty"
	case StatusTimeout:
		return "timed out before end of operation"
	case StatusClosed:
		return "trying to access closed queue"
	default:
		return "unknown status"
	}
}

// Err 返回状态码对应的哨兵错误，StatusOK返回nil
func (s Status) Err() error {
	switch s {
	case StatusFull:
		return ErrQueueFull
	case StatusEmpty:
		return ErrQueueEmpty
	case StatusTimeout:
		return ErrOperationTimeout
	case StatusClosed:
		return ErrQueueClosed
	default:
		return nil
	}
}

// StatusOf 将队列操作返回的错误映射为状态码
// nil映射为StatusOK；该函数只应作用于本包返回的错误，
// 无法识别的错误同样映射为StatusOK
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrQueueFull):
		return StatusFull
	case errors.Is(err, ErrQueueEmpty):
		return StatusEmpty
	case errors.Is(err, ErrOperationTimeout):
		return StatusTimeout
	case errors.Is(err, ErrQueueClosed):
		return StatusClosed
	default:
		return StatusOK
	}
}
