package store

import (
	"sync"
	"time"

	"resumeforge/internal/types"

	"github.com/google/uuid"
)

// FeedbackBoard holds feedback entries in memory. Entries do not survive
// a restart; the board exists for the lifetime of the process.
type FeedbackBoard struct {
	mu      sync.RWMutex
	entries []types.Feedback
}

// NewFeedbackBoard creates an empty board
func NewFeedbackBoard() *FeedbackBoard {
	return &FeedbackBoard{}
}

// Add records a feedback entry and returns it with ID and timestamp set
func (b *FeedbackBoard) Add(name, email, message string, rating int) types.Feedback {
	entry := types.Feedback{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)

	return entry
}

// List returns all entries, newest first
func (b *FeedbackBoard) List() []types.Feedback {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.Feedback, len(b.entries))
	for i, entry := range b.entries {
		out[len(b.entries)-1-i] = entry
	}
	return out
}

// Len reports the number of entries on the board
func (b *FeedbackBoard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
