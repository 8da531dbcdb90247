// Package formset plans inserts, updates and deletes for a group of child
// rows submitted together with their parent.
package formset

import (
	"strconv"

	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

// MaxForms caps the declared row count of a single group.
const MaxForms = 1000

const (
	msgTampered  = "Management form data is missing or has been tampered with."
	msgTooMany   = "Please submit at most 1000 forms."
	msgForeignID = "Select a valid choice. That choice does not belong to this profile."
	msgDuplicate = "Please correct the duplicate data."
)

// Fields is implemented by the per-row payload of a group.
type Fields interface {
	// IsBlank reports an untouched extra row.
	IsBlank() bool
	Validate() validation.Errors
}

type Row[T Fields] struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	Delete bool       `json:"delete,omitempty"`
	Fields T          `json:"fields"`
}

type Group[T Fields] struct {
	TotalForms int      `json:"total_forms"`
	Rows       []Row[T] `json:"rows"`
}

type OpKind int

const (
	OpInsert OpKind = iota + 1
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one planned child mutation. Position is the row index in the submission.
type Op[T Fields] struct {
	Kind     OpKind
	ID       uuid.UUID
	Position int
	Fields   T
}

// Plan validates g against the ids of the children the parent already owns
// and returns the mutations to apply. A group declaring zero rows is valid and
// yields no ops. Error keys are "<name>" for group errors and
// "<name>-<i>-<field>" for row errors.
func Plan[T Fields](name string, g Group[T], owned map[uuid.UUID]struct{}) ([]Op[T], validation.Errors) {
	errs := validation.Errors{}
	if g.TotalForms == 0 {
		return nil, errs
	}
	if g.TotalForms < 0 || g.TotalForms > len(g.Rows) {
		errs.Add(name, msgTampered)
		return nil, errs
	}
	if g.TotalForms > MaxForms {
		errs.Add(name, msgTooMany)
		return nil, errs
	}

	ops := make([]Op[T], 0, g.TotalForms)
	seen := make(map[uuid.UUID]struct{}, g.TotalForms)
	for i, row := range g.Rows[:g.TotalForms] {
		prefix := name + "-" + strconv.Itoa(i) + "-"

		if row.ID != nil {
			id := *row.ID
			if _, ok := owned[id]; !ok {
				errs.Add(prefix+"id", msgForeignID)
				continue
			}
			if _, dup := seen[id]; dup {
				errs.Add(prefix+"id", msgDuplicate)
				continue
			}
			seen[id] = struct{}{}

			if row.Delete {
				ops = append(ops, Op[T]{Kind: OpDelete, ID: id, Position: i})
				continue
			}
			if rowErrs := row.Fields.Validate(); !rowErrs.Empty() {
				errs.Merge(prefix, rowErrs)
				continue
			}
			ops = append(ops, Op[T]{Kind: OpUpdate, ID: id, Position: i, Fields: row.Fields})
			continue
		}

		if row.Delete || row.Fields.IsBlank() {
			continue
		}
		if rowErrs := row.Fields.Validate(); !rowErrs.Empty() {
			errs.Merge(prefix, rowErrs)
			continue
		}
		ops = append(ops, Op[T]{Kind: OpInsert, ID: uuid.New(), Position: i, Fields: row.Fields})
	}

	if !errs.Empty() {
		return nil, errs
	}
	return ops, errs
}
