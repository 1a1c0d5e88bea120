package hxtable

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

type person struct {
	Name  string
	Email string
}

func personComparator(a, b person, columnID string) int {
	switch columnID {
	case "email":
		return strings.Compare(a.Email, b.Email)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func TestSliceFetcherPaging(t *testing.T) {
	rows := make([]person, 0, 25)
	for _, n := range []string{"alice", "bob", "carol", "dave", "erin"} {
		for i := 0; i < 5; i++ {
			rows = append(rows, person{Name: n})
		}
	}
	fetch := SliceFetcher(&rows, personComparator)
	ctx := context.Background()

	tests := []struct {
		name       string
		page       PageState
		expectLen  int
		expectRows int
	}{
		{"first page", PageState{Index: 0, Size: 10}, 10, 25},
		{"partial last page", PageState{Index: 2, Size: 10}, 5, 25},
		{"page past the end", PageState{Index: 9, Size: 10}, 0, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := fetch(ctx, tt.page, SortState{})
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if len(res.Rows) != tt.expectLen {
				t.Errorf("len(Rows) = %d, want %d", len(res.Rows), tt.expectLen)
			}
			if res.RowCount != tt.expectRows {
				t.Errorf("RowCount = %d, want %d", res.RowCount, tt.expectRows)
			}
		})
	}
}

func TestSliceFetcherSorting(t *testing.T) {
	rows := []person{
		{Name: "carol", Email: "c@x"},
		{Name: "alice", Email: "a@x"},
		{Name: "bob", Email: "b@x"},
	}
	fetch := SliceFetcher(&rows, personComparator)
	ctx := context.Background()
	page := PageState{Index: 0, Size: 10}

	asc, err := fetch(ctx, page, SortState{Column: "name"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := names(asc.Rows); !reflect.DeepEqual(got, []string{"alice", "bob", "carol"}) {
		t.Errorf("ascending sort = %v", got)
	}

	desc, err := fetch(ctx, page, SortState{Column: "name", Desc: true})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := names(desc.Rows); !reflect.DeepEqual(got, []string{"carol", "bob", "alice"}) {
		t.Errorf("descending sort = %v", got)
	}

	// The source slice is never reordered.
	if rows[0].Name != "carol" {
		t.Errorf("source slice was mutated: %v", names(rows))
	}

	// No sort column: declaration order.
	plain, err := fetch(ctx, page, SortState{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := names(plain.Rows); !reflect.DeepEqual(got, []string{"carol", "alice", "bob"}) {
		t.Errorf("unsorted fetch reordered rows: %v", got)
	}
}

func TestSliceFetcherSeesMutations(t *testing.T) {
	rows := []person{{Name: "alice"}}
	fetch := SliceFetcher(&rows, nil)
	ctx := context.Background()
	page := PageState{Index: 0, Size: 10}

	res, _ := fetch(ctx, page, SortState{})
	if res.RowCount != 1 {
		t.Fatalf("RowCount = %d, want 1", res.RowCount)
	}

	rows = append(rows, person{Name: "bob"})
	res, _ = fetch(ctx, page, SortState{})
	if res.RowCount != 2 {
		t.Errorf("RowCount after append = %d, want 2", res.RowCount)
	}
}

func TestSliceFetcherCancelledContext(t *testing.T) {
	rows := []person{{Name: "alice"}}
	fetch := SliceFetcher(&rows, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetch(ctx, PageState{Index: 0, Size: 10}, SortState{}); err == nil {
		t.Error("cancelled context should fail the fetch")
	}
}

func names(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
