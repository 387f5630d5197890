package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChangeEvent is broadcast whenever assignments or grades change so
// connected clients can refresh.
type ChangeEvent struct {
	Kind      string    `json:"kind"` // "assignments" or "grades"
	EntityID  uint      `json:"entity_id,omitempty"`
	StudentID uint      `json:"student_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier is an explicit subscription hub. Subscribers get a buffered
// channel; a slow subscriber drops events rather than blocking publishers.
type Notifier struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]chan ChangeEvent
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uuid.UUID]chan ChangeEvent)}
}

func (n *Notifier) Subscribe() (uuid.UUID, <-chan ChangeEvent) {
	id := uuid.New()
	ch := make(chan ChangeEvent, 16)

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()

	return id, ch
}

func (n *Notifier) Unsubscribe(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

func (n *Notifier) Publish(event ChangeEvent) {
	event.Timestamp = time.Now()

	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (n *Notifier) NotifyAssignmentsChanged(assignmentID, studentID uint) {
	n.Publish(ChangeEvent{Kind: "assignments", EntityID: assignmentID, StudentID: studentID})
}

func (n *Notifier) NotifyGradesChanged(gradeID, studentID uint) {
	n.Publish(ChangeEvent{Kind: "grades", EntityID: gradeID, StudentID: studentID})
}
