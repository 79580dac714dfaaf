package tui

import tea "github.com/charmbracelet/bubbletea"

// resumeMsg carries a continuation back onto the event loop.
type resumeMsg struct{ resume func() }

// Scheduler queues orchestrator work until the program turns it into
// commands. Go is only called from the event loop.
type Scheduler struct {
	pending []func() func()
}

func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) Go(work func() func()) {
	s.pending = append(s.pending, work)
}

// Drain returns one command per queued job. Each command runs its job off the
// loop and answers with a resumeMsg.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, work := range s.pending {
		cmds = append(cmds, func() tea.Msg {
			return resumeMsg{resume: work()}
		})
	}
	s.pending = nil
	return tea.Batch(cmds...)
}
