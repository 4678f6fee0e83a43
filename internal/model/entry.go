package model

import "time"

// Entry is the common interface for rows displayed in a combined list view.
// Both *List and *Item implement it.
type Entry interface {
	GetID() string
	GetName() string
	GetCreatedAt() time.Time
	IsList() bool
	FinancialsHidden() bool
}

// List implements Entry.

func (l *List) GetID() string           { return l.ID }
func (l *List) GetName() string         { return l.Name }
func (l *List) GetCreatedAt() time.Time { return l.CreatedAt }
func (l *List) IsList() bool            { return true }
func (l *List) FinancialsHidden() bool  { return l.HideFinancials }

// Item implements Entry.

func (it *Item) GetID() string           { return it.ID }
func (it *Item) GetName() string         { return it.Name }
func (it *Item) GetCreatedAt() time.Time { return it.CreatedAt }
func (it *Item) IsList() bool            { return false }
func (it *Item) FinancialsHidden() bool  { return it.HideFinancials }
