package session

import "time"

// Sender identifies which side of the conversation produced a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single turn entry in a session transcript.
// Messages are immutable once created; ordering is insertion order.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Session is one conversation thread. ID is a monotonic unix-millisecond
// timestamp; CreatedAt is the display timestamp shown in history panes.
// Messages is non-empty from creation on (a session is created together
// with its first user message).
type Session struct {
	ID        int64     `json:"id"`
	CreatedAt string    `json:"timestamp"`
	Messages  []Message `json:"messages"`
}

// Summary is the lightweight session listing used by history panes
type Summary struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"timestamp"`
	Turns     int    `json:"turns"`
}

// NewMessage creates a message
func NewMessage(sender Sender, text string) Message {
	return Message{Text: text, Sender: sender}
}

// displayTimestamp formats a creation time for history panes
func displayTimestamp(t time.Time) string {
	return t.Format("1/2/2006, 3:04:05 PM")
}
