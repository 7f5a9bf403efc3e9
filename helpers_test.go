package main

import (
	"math/rand/v2"
	"testing"
)

type recordingNotifier struct {
	titles   []string
	messages []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

type recordingPanel struct {
	attached    ObjectID
	regenerated int
	detached    int
}

func (p *recordingPanel) Regenerate() { p.regenerated++ }
func (p *recordingPanel) Attach(id ObjectID) { p.attached = id }
func (p *recordingPanel) Detach() {
	p.attached = NoObject
	p.detached++
}

type recordingSizer struct {
	calls      int
	lastWidth  float64
	lastHeight float64
}

func (s *recordingSizer) UpdateScrollbarSizes(w, h float64) {
	s.calls++
	s.lastWidth, s.lastHeight = w, h
}

type testDocument struct {
	*Document
	notifier *recordingNotifier
	panel    *recordingPanel
	sizer    *recordingSizer
}

func newTestDocument(t *testing.T) *testDocument {
	t.Helper()
	td := &testDocument{
		notifier: &recordingNotifier{},
		panel:    &recordingPanel{attached: NoObject},
		sizer:    &recordingSizer{},
	}
	td.Document = NewDocument(DocumentOptions{
		Properties: td.panel,
		Scrollbars: td.sizer,
		Notifier:   td.notifier,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
	return td
}
