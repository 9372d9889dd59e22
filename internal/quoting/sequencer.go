package quoting

import (
	"errors"

	"quotation-management-api/internal/entity"
)

var ErrOutOfBounds = errors.New("navigation out of line item bounds")

// Step is what the wizard shows for one cursor position.
type Step struct {
	Position   int
	TotalItems int
	HasNext    bool
	HasPrev    bool
	Request    entity.RFQLineRequest
	Item       entity.ProposalLineItem
}

// Sequencer walks the line item store in rfq-item order with a bounds-checked
// cursor. Moving past either edge is a no-op, never an error: the first item
// has no previous, the last has no next. Items may be saved in any subset;
// the sequencer never blocks on unpriced items.
type Sequencer struct {
	store    *LineItemStore
	cursor   int
	finished bool
}

func NewSequencer(store *LineItemStore) *Sequencer {
	return &Sequencer{store: store}
}

func (q *Sequencer) Current() (Step, error) {
	req, item, err := q.store.At(q.cursor)
	if err != nil {
		return Step{}, err
	}

	return Step{
		Position:   q.cursor,
		TotalItems: q.store.Len(),
		HasNext:    q.cursor < q.store.Len()-1,
		HasPrev:    q.cursor > 0,
		Request:    req,
		Item:       item,
	}, nil
}

// Next advances the cursor and reports whether it moved.
func (q *Sequencer) Next() bool {
	if q.cursor >= q.store.Len()-1 {
		return false
	}
	q.cursor++

	return true
}

// Previous moves the cursor back and reports whether it moved.
func (q *Sequencer) Previous() bool {
	if q.cursor <= 0 {
		return false
	}
	q.cursor--

	return true
}

// SetPosition restores the cursor, e.g. when a seller resumes a draft.
func (q *Sequencer) SetPosition(position int) error {
	if position < 0 || position >= q.store.Len() {
		return ErrOutOfBounds
	}
	q.cursor = position

	return nil
}

// Save writes the item through the store, which reprices it first. The cursor
// does not move; navigation is a separate call.
func (q *Sequencer) Save(item entity.ProposalLineItem) (entity.ProposalLineItem, error) {
	return q.store.Save(item)
}

// Finish exits the sequence regardless of how many items were priced. A
// partially priced proposal is a valid outcome, not an error.
func (q *Sequencer) Finish() {
	q.finished = true
}

func (q *Sequencer) Finished() bool {
	return q.finished
}

func (q *Sequencer) Position() int {
	return q.cursor
}

func (q *Sequencer) Store() *LineItemStore {
	return q.store
}
