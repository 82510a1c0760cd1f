package stage

import (
	"strings"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

func TestKind(t *testing.T) {
	tests := []struct {
		kind     Kind
		name     string
		terminal bool
	}{
		{KindFilter, "filter", false},
		{KindMap, "map", false},
		{KindFlatMap, "flatmap", false},
		{KindSort, "sort", false},
		{KindReduce, "reduce", true},
		{KindGroupBy, "groupby", true},
		{KindJoin, "join", true},
		{KindCount, "count", true},
		{KindMin, "min", true},
		{KindMax, "max", true},
		{KindToSet, "toset", true},
		{KindToList, "tolist", true},
		{KindForEach, "foreach", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.name)
			}
			if tt.kind.Terminal() != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", tt.kind.Terminal(), tt.terminal)
			}
			if !tt.kind.Valid() {
				t.Error("expected kind to be valid")
			}
		})
	}
	if Kind(0).Valid() || Kind(99).String() != "unknown" || Kind(99).Terminal() {
		t.Error("out-of-range kinds must be invalid, unknown and non-terminal")
	}
}

func TestPipelineValidate(t *testing.T) {
	even := FilterOf(func(n int) bool { return n%2 == 0 })
	tests := []struct {
		name    string
		stages  []Stage
		wantErr bool
		stage   int
	}{
		{"empty", nil, false, 0},
		{"intermediate only", []Stage{even, SortOf(Natural[int]())}, false, 0},
		{"terminal last", []Stage{even, Count()}, false, 0},
		{"terminal first", []Stage{Count(), even}, true, 0},
		{"two terminals", []Stage{even, ToList(), Count()}, true, 1},
		{"nil predicate", []Stage{Filter(nil)}, true, 0},
		{"nil map", []Stage{even, Map(nil)}, true, 1},
		{"nil flatmap", []Stage{FlatMap(nil)}, true, 0},
		{"nil comparator", []Stage{Sort(nil)}, true, 0},
		{"nil min comparator", []Stage{Min(nil)}, true, 0},
		{"nil operator", []Stage{Reduce(0, nil)}, true, 0},
		{"nil key", []Stage{GroupBy(nil)}, true, 0},
		{"nil action", []Stage{ForEach(nil)}, true, 0},
		{"unknown kind", []Stage{{Kind: Kind(42)}}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.name, tt.stages...).Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.IsCode(err, errors.ErrCodeInvalidPipeline) {
				t.Fatalf("expected INVALID_PIPELINE, got %v", err)
			}
			appErr, _ := errors.As(err)
			if appErr.Details["stage"] != tt.stage {
				t.Errorf("stage detail = %v, want %d", appErr.Details["stage"], tt.stage)
			}
		})
	}
}

func TestPipelineSplit(t *testing.T) {
	p := New("p", MapOf(strings.ToUpper))
	rest, term := p.split()
	if len(rest) != 1 || term.Kind != KindToList {
		t.Errorf("expected implicit ToList, got %d stages and %s", len(rest), term.Kind)
	}

	p = New("p", MapOf(strings.ToUpper), Join(","))
	rest, term = p.split()
	if len(rest) != 1 || term.Kind != KindJoin || term.Sep != "," {
		t.Errorf("expected Join terminal, got %d stages and %s", len(rest), term.Kind)
	}
}

func TestTypedAdapters_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		call func() error
	}{
		{"filter", func() error { _, err := FilterOf(func(int) bool { return true }).Pred("x"); return err }},
		{"map", func() error { _, err := MapOf(strings.ToUpper).Fn(1); return err }},
		{"flatmap", func() error { _, err := FlatMapOf(func(s string) []string { return nil }).Fn(2.5); return err }},
		{"reduce left", func() error { _, err := ReduceOf(0, func(a, b int) int { return a + b }).Op("a", 1); return err }},
		{"reduce right", func() error { _, err := ReduceOf(0, func(a, b int) int { return a + b }).Op(1, "b"); return err }},
		{"sort", func() error { _, err := SortOf(Natural[string]()).Cmp("a", 1); return err }},
		{"min", func() error { _, err := MinOf(Natural[int]()).Cmp("a", 1); return err }},
		{"max", func() error { _, err := MaxOf(Natural[int]()).Cmp(1, "b"); return err }},
		{"groupby", func() error { _, err := GroupByOf(func(s string) int { return len(s) }).Fn(3); return err }},
		{"foreach", func() error { return ForEachOf(func(int) {}).Action("x") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.IsCode(err, errors.ErrCodeTypeMismatch) {
				t.Errorf("expected TYPE_MISMATCH, got %v", err)
			}
		})
	}
}

func TestTypedAdapters_NilElement(t *testing.T) {
	got, err := MapOf(func(p *int) bool { return p == nil }).Fn(nil)
	if err != nil {
		t.Fatalf("nil should convert to a nil pointer: %v", err)
	}
	if got != true {
		t.Errorf("got %v, want true", got)
	}
	if _, err := MapOf(func(n int) int { return n }).Fn(nil); !errors.IsCode(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("nil int should be a TYPE_MISMATCH, got %v", err)
	}
}

func TestTypedAdapters_Details(t *testing.T) {
	_, err := MapOf(strings.ToUpper).Fn(7)
	appErr, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Details["expected"] != "string" || appErr.Details["got"] != "int" {
		t.Errorf("unexpected details %v", appErr.Details)
	}
}

func TestNatural(t *testing.T) {
	cmp := Natural[string]()
	if cmp("Alice", "Bob") >= 0 || cmp("Bob", "Alice") <= 0 || cmp("x", "x") != 0 {
		t.Error("Natural[string] is not the natural order")
	}
}
