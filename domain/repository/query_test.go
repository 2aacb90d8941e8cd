package repository

import "testing"

func TestBuild_Conditions(t *testing.T) {
	q := Build(
		WithID("rep-1"),
		WithCustomerID("cust-1"),
		WithStatus("published"),
	)

	conds := q.Conditions()
	if len(conds) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(conds))
	}
	if conds[0].Field() != "id" || conds[0].Value() != "rep-1" {
		t.Errorf("unexpected first condition: %s", conds[0])
	}
	if conds[1].Field() != "customer_id" {
		t.Errorf("expected customer_id condition, got %s", conds[1].Field())
	}
	if conds[2].In() {
		t.Error("equality condition must not be flagged as IN")
	}
}

func TestBuild_InCondition(t *testing.T) {
	q := Build(WithCustomerIDIn([]string{"cust-1", "cust-2"}))

	conds := q.Conditions()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	if !conds[0].In() {
		t.Error("expected IN condition")
	}
	values, ok := conds[0].Value().([]string)
	if !ok || len(values) != 2 {
		t.Errorf("unexpected IN values: %v", conds[0].Value())
	}
}

func TestBuild_RawWhere(t *testing.T) {
	q := Build(WithWhere("embedding IS NULL"))

	conds := q.Conditions()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	if conds[0].Raw() != "embedding IS NULL" {
		t.Errorf("unexpected raw clause: %q", conds[0].Raw())
	}
	if len(conds[0].Args()) != 0 {
		t.Errorf("expected no args, got %v", conds[0].Args())
	}
}

func TestWithMissingEmbedding(t *testing.T) {
	q := Build(WithMissingEmbedding())

	conds := q.Conditions()
	if len(conds) != 1 || conds[0].Raw() != "embedding IS NULL" {
		t.Errorf("unexpected conditions: %v", conds)
	}
}

func TestBuild_OrderingAndPagination(t *testing.T) {
	q := Build(
		WithOrderDesc("created_at"),
		WithOrderAsc("id"),
		WithLimit(25),
		WithOffset(50),
	)

	orders := q.Orders()
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Field() != "created_at" || orders[0].Ascending() {
		t.Errorf("expected created_at DESC first, got %s asc=%v", orders[0].Field(), orders[0].Ascending())
	}
	if orders[1].Field() != "id" || !orders[1].Ascending() {
		t.Errorf("expected id ASC second")
	}
	if q.LimitValue() != 25 {
		t.Errorf("limit = %d, want 25", q.LimitValue())
	}
	if q.OffsetValue() != 50 {
		t.Errorf("offset = %d, want 50", q.OffsetValue())
	}
}

func TestBuild_Pagination(t *testing.T) {
	q := Build(WithPagination(10, 20)...)

	if q.LimitValue() != 10 || q.OffsetValue() != 20 {
		t.Errorf("pagination = (%d, %d), want (10, 20)", q.LimitValue(), q.OffsetValue())
	}
}

func TestBuild_Params(t *testing.T) {
	q := Build(WithParam("vector", []float64{1, 0}))

	v, ok := q.Param("vector")
	if !ok {
		t.Fatal("expected vector param")
	}
	if vec, ok := v.([]float64); !ok || len(vec) != 2 {
		t.Errorf("unexpected param value: %v", v)
	}

	if _, ok := q.Param("missing"); ok {
		t.Error("missing param must report !ok")
	}
}

func TestQuery_DefensiveCopies(t *testing.T) {
	q := Build(WithID("rep-1"), WithOrderAsc("id"))

	conds := q.Conditions()
	conds[0] = Condition{}
	if q.Conditions()[0].Field() != "id" {
		t.Error("Conditions must return a copy")
	}

	orders := q.Orders()
	orders[0] = Order{}
	if q.Orders()[0].Field() != "id" {
		t.Error("Orders must return a copy")
	}
}
