// Package nav provides path-based navigation history. The router pushes
// a path per navigation and re-enters its switch logic when the user
// walks back or forward through the stack.
package nav

// History is the navigation host the router talks to.
type History interface {
	// Push records a new path as the current entry, dropping any
	// forward entries.
	Push(path string)
	// Current returns the current path, or "" for an empty history.
	Current() string
	// Back moves one entry back and notifies pop subscribers. No-op at
	// the oldest entry.
	Back()
	// Forward moves one entry forward and notifies pop subscribers.
	// No-op at the newest entry.
	Forward()
	// OnPop registers fn to run with the new current path after Back
	// or Forward.
	OnPop(fn func(path string))
}

// Memory is an in-memory History.
type Memory struct {
	stack []string
	idx   int
	onPop []func(string)
}

// NewMemory creates an empty in-memory history.
func NewMemory() *Memory {
	return &Memory{idx: -1}
}

// Push records a new current path, truncating forward history.
func (m *Memory) Push(path string) {
	m.stack = append(m.stack[:m.idx+1], path)
	m.idx = len(m.stack) - 1
}

// Current returns the current path.
func (m *Memory) Current() string {
	if m.idx < 0 {
		return ""
	}
	return m.stack[m.idx]
}

// Back moves one entry back.
func (m *Memory) Back() {
	if m.idx <= 0 {
		return
	}
	m.idx--
	m.notify()
}

// Forward moves one entry forward.
func (m *Memory) Forward() {
	if m.idx+1 >= len(m.stack) {
		return
	}
	m.idx++
	m.notify()
}

// OnPop registers a pop subscriber.
func (m *Memory) OnPop(fn func(string)) {
	m.onPop = append(m.onPop, fn)
}

func (m *Memory) notify() {
	path := m.Current()
	for _, fn := range m.onPop {
		fn(path)
	}
}
