package formset

import (
	"strings"
	"testing"

	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

type item struct {
	Name string `json:"name"`
}

func (i item) IsBlank() bool { return strings.TrimSpace(i.Name) == "" }

func (i item) Validate() validation.Errors {
	errs := validation.Errors{}
	if strings.TrimSpace(i.Name) == "" {
		errs.Add("name", "This field is required.")
	}
	if len(i.Name) > 5 {
		errs.Add("name", "too long")
	}
	return errs
}

func idPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestPlan_ZeroDeclaredIsVacuouslyValid(t *testing.T) {
	g := Group[item]{TotalForms: 0, Rows: []Row[item]{{Fields: item{Name: "waytoolongvalue"}}}}
	ops, errs := Plan("things", g, nil)
	if !errs.Empty() || len(ops) != 0 {
		t.Fatalf("expected no ops and no errors, got %v %v", ops, errs)
	}
}

func TestPlan_InsertUpdateDelete(t *testing.T) {
	keep, drop := uuid.New(), uuid.New()
	owned := map[uuid.UUID]struct{}{keep: {}, drop: {}}

	g := Group[item]{TotalForms: 4, Rows: []Row[item]{
		{ID: idPtr(keep), Fields: item{Name: "kept"}},
		{ID: idPtr(drop), Delete: true},
		{Fields: item{Name: "new"}},
		{Fields: item{}},
	}}

	ops, errs := Plan("things", g, owned)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(ops))
	}
	if ops[0].Kind != OpUpdate || ops[0].ID != keep || ops[0].Position != 0 {
		t.Fatalf("unexpected update op: %+v", ops[0])
	}
	if ops[1].Kind != OpDelete || ops[1].ID != drop {
		t.Fatalf("unexpected delete op: %+v", ops[1])
	}
	if ops[2].Kind != OpInsert || ops[2].ID == uuid.Nil || ops[2].Position != 2 {
		t.Fatalf("unexpected insert op: %+v", ops[2])
	}
}

func TestPlan_RowErrorsArePrefixedAndAggregated(t *testing.T) {
	g := Group[item]{TotalForms: 2, Rows: []Row[item]{
		{Fields: item{Name: "toolongname"}},
		{ID: idPtr(uuid.New()), Fields: item{Name: "x"}},
	}}

	ops, errs := Plan("experiences", g, map[uuid.UUID]struct{}{})
	if ops != nil {
		t.Fatalf("expected no ops on error")
	}
	if _, ok := errs["experiences-0-name"]; !ok {
		t.Fatalf("expected row 0 name error, got %v", errs)
	}
	if _, ok := errs["experiences-1-id"]; !ok {
		t.Fatalf("expected foreign id error, got %v", errs)
	}
}

func TestPlan_DeclaredCountMismatch(t *testing.T) {
	g := Group[item]{TotalForms: 3, Rows: []Row[item]{{Fields: item{Name: "a"}}}}
	_, errs := Plan("educations", g, nil)
	if errs["educations"] != msgTampered {
		t.Fatalf("expected group error, got %v", errs)
	}

	_, errs = Plan("educations", Group[item]{TotalForms: -1}, nil)
	if errs["educations"] != msgTampered {
		t.Fatalf("expected group error for negative count, got %v", errs)
	}
}

func TestPlan_RowsPastDeclaredCountIgnored(t *testing.T) {
	g := Group[item]{TotalForms: 1, Rows: []Row[item]{
		{Fields: item{Name: "a"}},
		{Fields: item{Name: "toolongname"}},
	}}
	ops, errs := Plan("things", g, nil)
	if !errs.Empty() || len(ops) != 1 {
		t.Fatalf("expected 1 op and no errors, got %v %v", ops, errs)
	}
}

func TestPlan_DuplicateIDRejected(t *testing.T) {
	id := uuid.New()
	g := Group[item]{TotalForms: 2, Rows: []Row[item]{
		{ID: idPtr(id), Fields: item{Name: "a"}},
		{ID: idPtr(id), Delete: true},
	}}
	_, errs := Plan("things", g, map[uuid.UUID]struct{}{id: {}})
	if errs["things-1-id"] != msgDuplicate {
		t.Fatalf("expected duplicate error, got %v", errs)
	}
}
