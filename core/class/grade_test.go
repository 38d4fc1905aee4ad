package class

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func classes(names ...string) []Class {
	all := make([]Class, 0, len(names))
	for i, name := range names {
		all = append(all, Class{ID: fmt.Sprintf("c%d", i+1), Name: name})
	}
	return all
}

func ids(classes []Class) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.ID)
	}
	return out
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name      string
		className string
		wantGrade int
		wantOk    bool
	}{
		{name: "number", className: "10", wantGrade: 10, wantOk: true},
		{name: "padded", className: " 3 ", wantGrade: 3, wantOk: true},
		{name: "zero", className: "0", wantGrade: 0, wantOk: true},
		{name: "plus sign", className: "+9", wantGrade: 9, wantOk: true},
		{name: "minus sign", className: "-1", wantGrade: -1, wantOk: true},
		{name: "words", className: "Nursery"},
		{name: "abbreviation", className: "LKG"},
		{name: "section suffix", className: "9A"},
		{name: "decimal", className: "9.5"},
		{name: "empty", className: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, ok := ParseGrade(tt.className)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantGrade, grade)
		})
	}
}

func TestPromotionCandidates(t *testing.T) {
	tests := []struct {
		name   string
		all    []Class
		source int // index in all
		want   []string
	}{
		{name: "next grade", all: classes("9", "10"), source: 0, want: []string{"c2"}},
		{name: "next grade, many sections", all: classes("9", "10", "11", "10"), source: 0, want: []string{"c2", "c4"}},
		{name: "no next grade", all: classes("9", "11", "Nursery"), source: 0, want: []string{"c2", "c3"}},
		{name: "last grade", all: classes("11", "12"), source: 1, want: []string{"c1"}},
		{name: "non numeric", all: classes("9A", "9B"), source: 0, want: []string{"c2"}},
		{name: "words", all: classes("Nursery", "LKG", "1"), source: 0, want: []string{"c2", "c3"}},
		{name: "single class", all: classes("9"), source: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromotionCandidates(tt.all, tt.all[tt.source])
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestPromotionCandidates_properties(t *testing.T) {
	all := classes("1", "2", "2", "3", "Nursery", "KG", "5B", "10", "11")

	for _, source := range all {
		got := PromotionCandidates(all, source)

		grade, numeric := ParseGrade(source.Name)
		hasNext := false
		for _, c := range all {
			if g, ok := ParseGrade(c.Name); numeric && ok && g == grade+1 {
				hasNext = true
			}
		}

		if hasNext {
			for _, c := range got {
				g, ok := ParseGrade(c.Name)
				assert.True(t, ok && g == grade+1, "%s: got %q", source.Name, c.Name)
			}
			continue
		}
		assert.Len(t, got, len(all)-1, source.Name)
		assert.NotContains(t, ids(got), source.ID, source.Name)
	}
}

func TestRetentionCandidates(t *testing.T) {
	sectioned := []Class{
		{ID: "a", Name: "9", Section: "A"},
		{ID: "b", Name: "9", Section: "B"},
		{ID: "c", Name: "10", Section: "A"},
	}
	tests := []struct {
		name   string
		all    []Class
		source Class
		want   []string
	}{
		{name: "same name, any section", all: sectioned, source: sectioned[0], want: []string{"a", "b"}},
		{name: "case insensitive", all: []Class{{ID: "x", Name: "Nursery"}, {ID: "y", Name: " nursery"}}, source: Class{ID: "x", Name: "Nursery"}, want: []string{"x", "y"}},
		{name: "suffixed names differ", all: classes("9A", "9B"), source: Class{ID: "c1", Name: "9A"}, want: []string{"c1"}},
		{name: "source unknown", all: classes("1", "2"), source: Class{ID: "z", Name: "7"}, want: []string{"z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(RetentionCandidates(tt.all, tt.source)))
		})
	}
}

func TestClass_Label(t *testing.T) {
	assert.Equal(t, "10", Class{Name: "10"}.Label())
	assert.Equal(t, "10 (B)", Class{Name: "10", Section: "B"}.Label())
}
