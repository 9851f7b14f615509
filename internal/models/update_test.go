// ABOUTME: Tests for sparse update column assembly.
// ABOUTME: Only set fields may appear, keyed by fixed column names.
package models

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEmptyUpdates(t *testing.T) {
	if !(OwnerUpdate{}).IsEmpty() {
		t.Error("empty OwnerUpdate should report IsEmpty")
	}
	if !(PetUpdate{}).IsEmpty() {
		t.Error("empty PetUpdate should report IsEmpty")
	}
	if !(VisitUpdate{}).IsEmpty() {
		t.Error("empty VisitUpdate should report IsEmpty")
	}
}

func TestPetUpdateAgeOnly(t *testing.T) {
	cols := PetUpdate{Age: Ptr(3)}.Columns()

	if len(cols) != 1 {
		t.Fatalf("expected 1 column, got %d: %v", len(cols), cols)
	}
	if cols[ColAge] != 3 {
		t.Errorf("age = %v, want 3", cols[ColAge])
	}
}

func TestVisitUpdateDateForms(t *testing.T) {
	fromTime := VisitUpdate{Date: DateOf(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))}.Columns()
	if fromTime[ColDate] != "2024-02-01" {
		t.Errorf("date from time = %v, want 2024-02-01", fromTime[ColDate])
	}

	fromText := VisitUpdate{Date: DateText("2024-02-01")}.Columns()
	if fromText[ColDate] != "2024-02-01" {
		t.Errorf("date from text = %v, want 2024-02-01", fromText[ColDate])
	}
}

func TestProperty_PetUpdateColumns(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("columns contain exactly the set fields", prop.ForAll(
		func(setName, setSpecies, setBreed, setAge, setOwner bool) bool {
			var u PetUpdate
			want := 0
			if setName {
				u.Name = Ptr("Rex")
				want++
			}
			if setSpecies {
				u.Species = Ptr("dog")
				want++
			}
			if setBreed {
				u.Breed = Ptr("lab")
				want++
			}
			if setAge {
				u.Age = Ptr(4)
				want++
			}
			if setOwner {
				u.OwnerID = Ptr(int64(2))
				want++
			}
			cols := u.Columns()
			_, hasAge := cols[ColAge]
			return len(cols) == want && hasAge == setAge && u.IsEmpty() == (want == 0)
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
