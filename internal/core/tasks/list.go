// Package tasks implements the to-do list: an ordered collection with stable
// ids, incomplete items first, persisted wholesale after every mutation.
package tasks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyText is returned when adding an item without text.
var ErrEmptyText = errors.New("task text is empty")

// Item is a single to-do entry.
type Item struct {
	ID        string
	Text      string
	Completed bool
}

// Store persists the whole list.
type Store interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// List is the in-memory list. It is owned by the frame loop.
type List struct {
	store   Store
	logger  *slog.Logger
	items   []Item
	version uint64
	newID   func() string
}

// Open loads the list from store. A missing, unreadable or blank store
// (nil items) starts empty and is immediately rewritten.
func Open(store Store, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	list := &List{
		store:  store,
		logger: logger,
		newID:  func() string { return uuid.NewString() },
	}

	items, err := store.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no task list yet, creating one")
		} else {
			logger.Warn("task list unreadable, starting empty", "error", err)
		}
		list.items = nil
		_ = list.persist()
		return list
	}
	if items == nil {
		logger.Info("task store is blank, writing an empty list")
		_ = list.persist()
		return list
	}

	items, repaired := list.repairIDs(items)
	list.items = items
	list.sort()
	if repaired {
		_ = list.persist()
	}
	return list
}

// Add appends a new incomplete item and returns it.
func (list *List) Add(text string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrEmptyText
	}
	item := Item{ID: list.newID(), Text: text}
	list.items = append(list.items, item)
	list.sort()
	list.version++
	return item, list.persist()
}

// Toggle flips the completion flag of the item with id. Unknown ids are
// ignored and report false.
func (list *List) Toggle(id string) (bool, error) {
	index := list.indexOf(id)
	if index < 0 {
		return false, nil
	}
	list.items[index].Completed = !list.items[index].Completed
	list.sort()
	list.version++
	return true, list.persist()
}

// Delete removes the item with id. Unknown ids are ignored and report false.
func (list *List) Delete(id string) (bool, error) {
	index := list.indexOf(id)
	if index < 0 {
		return false, nil
	}
	list.items = slices.Delete(list.items, index, index+1)
	list.version++
	return true, list.persist()
}

// Items returns a copy of the ordered items.
func (list *List) Items() []Item {
	return slices.Clone(list.items)
}

// Len returns the number of items.
func (list *List) Len() int {
	return len(list.items)
}

// Version changes whenever the list changes.
func (list *List) Version() uint64 {
	return list.version
}

func (list *List) indexOf(id string) int {
	return slices.IndexFunc(list.items, func(item Item) bool { return item.ID == id })
}

// sort keeps incomplete items first, preserving relative order in each group.
func (list *List) sort() {
	slices.SortStableFunc(list.items, func(a, b Item) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case !a.Completed:
			return -1
		default:
			return 1
		}
	})
}

func (list *List) persist() error {
	if err := list.store.Save(slices.Clone(list.items)); err != nil {
		list.logger.Warn("save task list", "error", err)
		return fmt.Errorf("save task list: %w", err)
	}
	return nil
}

// repairIDs gives items without an id, or with a duplicate id, a fresh one.
func (list *List) repairIDs(items []Item) ([]Item, bool) {
	seen := make(map[string]struct{}, len(items))
	repaired := make([]Item, 0, len(items))
	changed := false
	for _, item := range items {
		if item.ID == "" {
			item.ID = list.newID()
			changed = true
		} else if _, dup := seen[item.ID]; dup {
			list.logger.Warn("duplicate task id reassigned", "id", item.ID)
			item.ID = list.newID()
			changed = true
		}
		seen[item.ID] = struct{}{}
		repaired = append(repaired, item)
	}
	return repaired, changed
}
