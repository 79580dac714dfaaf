package view

import "github.com/jask/storefront/internal/events"

// Modal hosts one unit above the page.
type Modal struct {
	pub     events.Publisher
	content Viewer
}

func NewModal(pub events.Publisher) *Modal {
	return &Modal{pub: pub}
}

// Open replaces the modal content and shows it.
func (m *Modal) Open(content Viewer) {
	m.content = content
}

// Close discards the content.
func (m *Modal) Close() {
	m.content = nil
}

func (m *Modal) Active() bool { return m.content != nil }

// Content returns the hosted unit, or nil.
func (m *Modal) Content() Viewer { return m.content }

func (m *Modal) View() Handle {
	if m.content == nil {
		return ""
	}
	return m.content.View()
}

// RequestClose is the close button gesture.
func (m *Modal) RequestClose() {
	m.pub.Publish(events.ModalClose{})
}
