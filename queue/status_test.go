package queue

import (
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	cases := []struct {
		status Status
		text   string
	}{
		{StatusOK, "ok"},
		{StatusFull, "queue is full"},
		{StatusEmpty, "queue is empty"},
		{StatusTimeout, "timed out before end of operation"},
		{StatusClosed, "trying to access closed queue"},
		{Status(99), "unknown status"},
	}

	for _, c := range cases {
		if got := c.status.String(); got != c.text {
			t.Errorf("Status(%d).String() = %q, want %q", c.status, got, c.text)
		}
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status Status
	}{
		{nil, StatusOK},
		{ErrQueueFull, StatusFull},
		{ErrQueueEmpty, StatusEmpty},
		{ErrOperationTimeout, StatusTimeout},
		{ErrQueueClosed, StatusClosed},
	}

	for _, c := range cases {
		if got := StatusOf(c.err); got != c.status {
			t.Errorf("StatusOf(%v) = %v, want %v", c.err, got, c.status)
		}
	}
}

func TestStatus_Err(t *testing.T) {
	if StatusOK.Err() != nil {
		t.Errorf("StatusOK.Err() should be nil")
	}

	for _, s := range []Status{StatusFull, StatusEmpty, StatusTimeout, StatusClosed} {
		err := s.Err()
		if err == nil {
			t.Fatalf("Status(%v).Err() should not be nil", s)
		}
		if StatusOf(err) != s {
			t.Errorf("StatusOf(%v.Err()) = %v, round trip failed", s, StatusOf(err))
		}
	}

	// 包裹后的错误仍应映射到同一状态
	wrapped := errors.Join(errors.New("push failed"), ErrQueueFull)
	if StatusOf(wrapped) != StatusFull {
		t.Errorf("StatusOf(wrapped) = %v, want StatusFull", StatusOf(wrapped))
	}
}
