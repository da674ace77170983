package database

import (
	"context"
	"testing"
)

func TestFilterOperator_String(t *testing.T) {
	tests := []struct {
		op   FilterOperator
		want string
	}{
		{OpEqual, "="},
		{OpNotEqual, "!="},
		{OpGreaterThan, ">"},
		{OpGreaterThanOrEqual, ">="},
		{OpLessThan, "<"},
		{OpLessThanOrEqual, "<="},
		{OpLike, "LIKE"},
		{OpIn, "IN"},
		{OpBetween, "BETWEEN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("FilterOperator.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortDirection_String(t *testing.T) {
	if SortAsc.String() != "ASC" {
		t.Errorf("SortAsc.String() = %v, want ASC", SortAsc.String())
	}
	if SortDesc.String() != "DESC" {
		t.Errorf("SortDesc.String() = %v, want DESC", SortDesc.String())
	}
}

func TestNewFilter(t *testing.T) {
	f := NewFilter("experiment", OpEqual, "enhancer_stacking")

	if f.Field() != "experiment" {
		t.Errorf("Field() = %v, want experiment", f.Field())
	}
	if f.Operator() != OpEqual {
		t.Errorf("Operator() = %v, want OpEqual", f.Operator())
	}
	if f.Value() != "enhancer_stacking" {
		t.Errorf("Value() = %v, want enhancer_stacking", f.Value())
	}
}

func TestNewBetweenFilter(t *testing.T) {
	f := NewBetweenFilter("length", 100, 2000)

	if f.Field() != "length" {
		t.Errorf("Field() = %v, want length", f.Field())
	}
	if f.Operator() != OpBetween {
		t.Errorf("Operator() = %v, want OpBetween", f.Operator())
	}
	if f.Value() != 100 {
		t.Errorf("Value() = %v, want 100", f.Value())
	}
}

func TestQuery_Chaining(t *testing.T) {
	q := NewQuery().
		Equal("experiment", "logic_gates").
		GreaterThan("length", 1000).
		In("name", []string{"LogicGate_AND_00", "LogicGate_AND_11"}).
		OrderDesc("created_at").
		Limit(10).
		Offset(20)

	if got := len(q.Filters()); got != 3 {
		t.Errorf("expected 3 filters, got %d", got)
	}
	if got := len(q.Orders()); got != 1 {
		t.Errorf("expected 1 order, got %d", got)
	}
	if q.LimitValue() != 10 {
		t.Errorf("LimitValue() = %v, want 10", q.LimitValue())
	}
	if q.OffsetValue() != 20 {
		t.Errorf("OffsetValue() = %v, want 20", q.OffsetValue())
	}
}

func TestQuery_ExtendingDoesNotMutateBase(t *testing.T) {
	base := NewQuery().Equal("experiment", "cocktail")

	withRun := base.Equal("run_id", "a")
	withName := base.Equal("name", "b")

	if got := len(base.Filters()); got != 1 {
		t.Errorf("base grew to %d filters", got)
	}
	if got := len(withRun.Filters()); got != 2 {
		t.Errorf("extended query has %d filters, want 2", got)
	}
	if got := len(withName.Filters()); got != 2 {
		t.Errorf("extended query has %d filters, want 2", got)
	}
}

func TestQuery_Paginate(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		wantLim  int
		wantOff  int
	}{
		{1, 10, 10, 0},
		{2, 10, 10, 10},
		{3, 25, 25, 50},
		{0, 10, 10, 0},  // page < 1 defaults to 1
		{1, 0, 10, 0},   // pageSize < 1 defaults to 10
		{-1, -5, 10, 0}, // both invalid default
	}

	for _, tt := range tests {
		q := NewQuery().Paginate(tt.page, tt.pageSize)
		if q.LimitValue() != tt.wantLim {
			t.Errorf("Paginate(%d, %d) limit = %d, want %d", tt.page, tt.pageSize, q.LimitValue(), tt.wantLim)
		}
		if q.OffsetValue() != tt.wantOff {
			t.Errorf("Paginate(%d, %d) offset = %d, want %d", tt.page, tt.pageSize, q.OffsetValue(), tt.wantOff)
		}
	}
}

func TestQuery_AllFilterTypes(t *testing.T) {
	q := NewQuery().
		Equal("a", 1).
		NotEqual("b", 2).
		GreaterThan("c", 3).
		GreaterThanOrEqual("d", 4).
		LessThan("e", 5).
		LessThanOrEqual("f", 6).
		Like("g", "%E100%").
		In("h", []int{1, 2, 3}).
		WhereBetween("i", 10, 20)

	filters := q.Filters()
	if len(filters) != 9 {
		t.Fatalf("expected 9 filters, got %d", len(filters))
	}

	expectedOps := []FilterOperator{
		OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual,
		OpLessThan, OpLessThanOrEqual, OpLike, OpIn, OpBetween,
	}

	for i, filter := range filters {
		if filter.Operator() != expectedOps[i] {
			t.Errorf("filter %d: Operator() = %v, want %v", i, filter.Operator(), expectedOps[i])
		}
	}
}

func TestQuery_OrderMethods(t *testing.T) {
	q := NewQuery().
		OrderAsc("name").
		OrderDesc("created_at").
		Order("length", SortAsc)

	orders := q.Orders()
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}

	if orders[0].Field() != "name" || orders[0].Direction() != SortAsc {
		t.Errorf("order 0: got %s %v, want name ASC", orders[0].Field(), orders[0].Direction())
	}
	if orders[1].Field() != "created_at" || orders[1].Direction() != SortDesc {
		t.Errorf("order 1: got %s %v, want created_at DESC", orders[1].Field(), orders[1].Direction())
	}
	if orders[2].Field() != "length" || orders[2].Direction() != SortAsc {
		t.Errorf("order 2: got %s %v, want length ASC", orders[2].Field(), orders[2].Direction())
	}
}

func TestQuery_Apply(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	err := db.Session(ctx).Exec(`
		CREATE TABLE builds (
			id INTEGER PRIMARY KEY,
			name TEXT,
			experiment TEXT,
			length INTEGER
		)
	`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = db.Session(ctx).Exec(`
		INSERT INTO builds (name, experiment, length) VALUES
		('E0_construct', 'enhancer_stacking', 180),
		('E100_construct', 'enhancer_stacking', 1024),
		('LogicGate_AND_00', 'logic_gates', 2048)
	`).Error
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	q := NewQuery().
		Equal("experiment", "enhancer_stacking").
		OrderDesc("length").
		Limit(10)

	type Build struct {
		ID         int64
		Name       string
		Experiment string
		Length     int
	}

	var builds []Build
	if result := q.Apply(db.Session(ctx).Table("builds")).Find(&builds); result.Error != nil {
		t.Fatalf("query: %v", result.Error)
	}

	if len(builds) != 2 {
		t.Fatalf("expected 2 builds, got %d", len(builds))
	}
	if builds[0].Name != "E100_construct" {
		t.Errorf("expected first build E100_construct, got %s", builds[0].Name)
	}
	if builds[1].Name != "E0_construct" {
		t.Errorf("expected second build E0_construct, got %s", builds[1].Name)
	}
}

func TestQuery_ApplyWithBetween(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	err := db.Session(ctx).Exec(`CREATE TABLE spans (id INTEGER PRIMARY KEY, label TEXT, width INTEGER)`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = db.Session(ctx).Exec(`
		INSERT INTO spans (label, width) VALUES
		('promoter', 60),
		('enhancer', 180),
		('upstream_filler', 400000)
	`).Error
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	q := NewQuery().WhereBetween("width", 60, 180)

	type Span struct {
		ID    int64
		Label string
		Width int
	}

	var spans []Span
	if result := q.Apply(db.Session(ctx).Table("spans")).Find(&spans); result.Error != nil {
		t.Fatalf("query: %v", result.Error)
	}

	if len(spans) != 2 {
		t.Errorf("expected 2 spans, got %d", len(spans))
	}
}

func TestQuery_ApplyWithIn(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	err := db.Session(ctx).Exec(`CREATE TABLE parts (id INTEGER PRIMARY KEY, name TEXT)`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = db.Session(ctx).Exec(`INSERT INTO parts (name) VALUES ('HS2'), ('HBG1'), ('GATA1'), ('KLF1')`).Error
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	q := NewQuery().In("name", []string{"HS2", "KLF1"})

	type Part struct {
		ID   int64
		Name string
	}

	var parts []Part
	if result := q.Apply(db.Session(ctx).Table("parts")).Find(&parts); result.Error != nil {
		t.Fatalf("query: %v", result.Error)
	}

	if len(parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(parts))
	}
}
