package queueservice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fyerfyer/fyer-queue/queue"
)

// QueueData 表示队列的可序列化数据结构
type QueueData struct {
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Size      int       `json:"size"`
	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"createdAt"`
	ClosedAt  time.Time `json:"closedAt,omitempty"`
}

// StatusText 返回队列操作错误对应的可读状态文本
func StatusText(err error) string {
	return queue.StatusOf(err).String()
}

// FormatQueueInfo 返回队列信息的格式化字符串表示
func FormatQueueInfo(info QueueInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Queue: %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("State: %s\n", formatState(info.Closed)))
	sb.WriteString(fmt.Sprintf("Size: %d/%d\n", info.Stats.Size, info.Stats.Capacity))
	sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimeAgo(info.Stats.CreatedAt)))
	sb.WriteString(fmt.Sprintf("Operations: %d pushed, %d popped\n",
		info.Stats.Pushed, info.Stats.Popped))

	return sb.String()
}

// FormatQueueStats 返回队列统计信息的格式化字符串表示
func FormatQueueStats(stats queue.Stats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d\n", stats.Size))
	sb.WriteString(fmt.Sprintf("Capacity: %d (%.1f%% utilized)\n",
		stats.Capacity, stats.Utilization()*100))
	sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimeAgo(stats.CreatedAt)))

	if !stats.ClosedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Closed: %s\n", formatTimeAgo(stats.ClosedAt)))
	}

	sb.WriteString(fmt.Sprintf("Operations: %d pushed, %d popped\n",
		stats.Pushed, stats.Popped))

	if stats.PushBlocks > 0 || stats.PopBlocks > 0 {
		sb.WriteString(fmt.Sprintf("Blocks: %d push, %d pop\n",
			stats.PushBlocks, stats.PopBlocks))
	}

	if stats.PushTimeouts > 0 || stats.PopTimeouts > 0 {
		sb.WriteString(fmt.Sprintf("Timeouts: %d push, %d pop\n",
			stats.PushTimeouts, stats.PopTimeouts))
	}

	if stats.Rejected > 0 {
		sb.WriteString(fmt.Sprintf("Rejected: %d\n", stats.Rejected))
	}

	return sb.String()
}

// SerializeQueueData 将队列快照序列化为JSON
func SerializeQueueData(data QueueData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// DeserializeQueueData 从JSON反序列化队列快照
func DeserializeQueueData(data []byte) (QueueData, error) {
	var queueData QueueData
	err := json.Unmarshal(data, &queueData)
	return queueData, err
}

// formatState 将开闭状态格式化为可读文本
func formatState(closed bool) string {
	if closed {
		return "closed"
	}
	return "open"
}

// formatTimeAgo 将时间格式化为人类可读的"多久之前"字符串
func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	seconds := int(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d seconds ago", seconds)
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	return fmt.Sprintf("%d days ago", days)
}
