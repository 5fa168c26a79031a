package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// MessageDuration is how long a new message stays on screen, in seconds.
const MessageDuration = 3.0

// Alpha is the message opacity in [0, 1].
func (m Message) Alpha() float64 {
	if m.MaxTime <= 0 {
		return 0
	}
	a := m.TimeLeft / m.MaxTime
	if a > 1 {
		return 1
	}
	if a < 0 {
		return 0
	}
	return a
}
