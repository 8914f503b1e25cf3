// Package navigation tracks the views a user has visited for single-level
// back navigation.
package navigation

// Home is the view every stack starts from unless told otherwise.
const Home = "home"

// Stack is an ordered history of view tags. The last entry is the current
// view. Pushes always append; there is no redo and no deduplication.
type Stack struct {
	history []string
}

// Snapshot is a serializable view of a Stack.
type Snapshot struct {
	Current   string   `json:"current"`
	Previous  string   `json:"previous,omitempty"`
	CanGoBack bool     `json:"canGoBack"`
	History   []string `json:"history"`
}

// New creates a stack whose only entry is initial. An empty initial starts at Home.
func New(initial string) *Stack {
	if initial == "" {
		initial = Home
	}
	return &Stack{history: []string{initial}}
}

// Push makes view the current view.
func (s *Stack) Push(view string) {
	s.history = append(s.history, view)
}

// Back pops the current view when there is somewhere to go back to.
func (s *Stack) Back() bool {
	if !s.CanGoBack() {
		return false
	}
	s.history = s.history[:len(s.history)-1]
	return true
}

// Current returns the view on top of the stack.
func (s *Stack) Current() string {
	return s.history[len(s.history)-1]
}

// Previous returns the view Back would return to, or "" at the bottom.
func (s *Stack) Previous() string {
	if len(s.history) < 2 {
		return ""
	}
	return s.history[len(s.history)-2]
}

// CanGoBack reports whether the history holds more than one view.
func (s *Stack) CanGoBack() bool {
	return len(s.history) > 1
}

// History returns a copy of the visited views, oldest first.
func (s *Stack) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Reset drops everything but a single initial view.
func (s *Stack) Reset(initial string) {
	*s = *New(initial)
}

// Snapshot captures the stack state.
func (s *Stack) Snapshot() Snapshot {
	return Snapshot{
		Current:   s.Current(),
		Previous:  s.Previous(),
		CanGoBack: s.CanGoBack(),
		History:   s.History(),
	}
}
