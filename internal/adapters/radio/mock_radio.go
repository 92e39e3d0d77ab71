package radio

import "sync"

// MockRadio implements ports.Radio for mock mode and tests. It captures
// transmitted frames and channel changes in memory.
type MockRadio struct {
	mu       sync.Mutex
	frames   [][]byte
	channels []int
	Closed   bool
}

func NewMockRadio() *MockRadio {
	return &MockRadio{}
}

func (m *MockRadio) Transmit(frame []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy so a reused caller buffer cannot mutate history.
	cp := make([]byte, len(frame))
	copy(cp, frame)
	m.frames = append(m.frames, cp)
	return nil
}

func (m *MockRadio) SetChannel(channel int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, channel)
	return nil
}

func (m *MockRadio) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// Frames returns a copy of the captured frames.
func (m *MockRadio) Frames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.frames))
	for i, f := range m.frames {
		out[i] = make([]byte, len(f))
		copy(out[i], f)
	}
	return out
}

// Channels returns the sequence of channel changes.
func (m *MockRadio) Channels() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.channels))
	copy(out, m.channels)
	return out
}
