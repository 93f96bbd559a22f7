package collection

import (
	"context"

	"github.com/diasKarataev/todo-client/domain"
)

// editState is the at-most-one task under edit: a snapshot of the task plus
// the draft fields the user is typing into.
type editState struct {
	task    domain.Task
	name    string
	details string
}

// EditDraft is the read-only view of the active edit.
type EditDraft struct {
	TaskID  string
	Name    string
	Details string
}

// StartEdit opens an edit session for the given task, snapshotting its
// current name and details into the draft. Starting a new edit while one is
// active discards the previous draft: last writer wins, no merge.
func (c *Controller) StartEdit(task domain.Task) {
	c.mu.Lock()
	c.edit = &editState{task: task, name: task.Name, details: task.Details}
	c.mu.Unlock()
}

// SetEditDraft replaces the draft fields of the active edit. No-op when
// nothing is being edited.
func (c *Controller) SetEditDraft(name, details string) {
	c.mu.Lock()
	if c.edit != nil {
		c.edit.name = name
		c.edit.details = details
	}
	c.mu.Unlock()
}

// CancelEdit discards the draft without any network call.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.edit = nil
	c.mu.Unlock()
}

// Editing returns the active draft, if any.
func (c *Controller) Editing() (EditDraft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit == nil {
		return EditDraft{}, false
	}
	return EditDraft{TaskID: c.edit.task.ID, Name: c.edit.name, Details: c.edit.details}, true
}

// SaveEdit submits the draft as an update. On success the returned task
// replaces the matching page entry and the edit closes; on failure the edit
// stays open so the user can retry or cancel.
func (c *Controller) SaveEdit(ctx context.Context) (*domain.Task, error) {
	c.mu.Lock()
	if c.edit == nil {
		c.mu.Unlock()
		return nil, domain.ErrNoEdit
	}
	submit := c.edit.task
	submit.Name = c.edit.name
	submit.Details = c.edit.details
	c.mu.Unlock()

	updated, err := c.repo.Update(ctx, &submit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == updated.ID {
			c.tasks[i] = *updated
			break
		}
	}
	// The edit may have been cancelled or replaced while the call was in
	// flight; only close it if it still belongs to the saved task.
	if c.edit != nil && c.edit.task.ID == updated.ID {
		c.edit = nil
	}
	return updated, nil
}
