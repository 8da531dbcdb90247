package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type sampleForm struct {
	Username string `json:"username" validate:"required,max=10,username"`
	Website  string `json:"website" validate:"omitempty,url"`
	Summary  string `json:"summary" validate:"notblank,max=5"`
	Started  string `json:"started" validate:"omitempty,date"`
}

func TestStruct_MapsJSONNames(t *testing.T) {
	errs := Struct(sampleForm{
		Username: "bad name!",
		Website:  "not a url",
		Summary:  "   ",
		Started:  "2023-13-40",
	})

	for _, key := range []string{"username", "website", "summary", "started"} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected error for %q, got %v", key, errs)
		}
	}
	if errs["summary"] != "This field is required." {
		t.Fatalf("unexpected summary message: %q", errs["summary"])
	}
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(sampleForm{Username: "alice", Summary: "S", Started: "2023-01-01"})
	if !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs.Err() != nil {
		t.Fatalf("expected nil error")
	}
}

func TestErrors_MergeAndAs(t *testing.T) {
	errs := Errors{}
	errs.Merge("experiences-0-", Errors{"title": "This field is required."})
	errs.Add("experiences-0-title", "second message")

	if errs["experiences-0-title"] != "This field is required." {
		t.Fatalf("expected first message kept, got %q", errs["experiences-0-title"])
	}

	wrapped := fmt.Errorf("save: %w", errs.Err())
	got, ok := AsErrors(wrapped)
	if !ok || len(got) != 1 {
		t.Fatalf("expected to unwrap Errors, got %v %v", got, ok)
	}
	if !strings.Contains(wrapped.Error(), "experiences-0-title") {
		t.Fatalf("error text should include key: %s", wrapped.Error())
	}
	if _, ok := AsErrors(errors.New("plain")); ok {
		t.Fatalf("plain error must not convert")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" ")
	if err != nil || d != nil {
		t.Fatalf("blank should be nil, got %v %v", d, err)
	}
	d, err = ParseDate("2023-01-01")
	if err != nil || FormatDate(d) != "2023-01-01" {
		t.Fatalf("unexpected parse: %v %v", d, err)
	}
	if _, err := ParseDate("01/02/2023"); err == nil {
		t.Fatalf("expected parse error")
	}
}
