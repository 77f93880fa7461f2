package scanner

import (
	"reflect"
	"testing"
)

func TestExtract_Update(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"direct",
			"UPDATE customers SET name = 'x' WHERE id = 1",
			[]string{"customers"},
		},
		{
			"direct schema qualified",
			"UPDATE dbo.orders SET total = 0",
			[]string{"dbo.orders"},
		},
		{
			"alias bound by from",
			"UPDATE ord SET status = 2 FROM orders ord JOIN customers c ON ord.cust_id = c.id",
			[]string{"orders"},
		},
		{
			"alias bound by join",
			"UPDATE ord SET status = 2 FROM customers c JOIN orders ord ON ord.cust_id = c.id",
			[]string{"orders"},
		},
		{
			"alias with as keyword",
			"UPDATE o SET total = 0 FROM orders AS o WHERE o.id = 1",
			[]string{"orders"},
		},
		{
			"table named directly in from",
			"UPDATE orders SET total = 0 FROM orders WHERE id = 1",
			[]string{"orders"},
		},
		{
			"unresolved alias",
			"UPDATE x SET a = 1 FROM orders o WHERE o.id = 1",
			nil,
		},
		{
			"subquery from does not open a chain",
			"UPDATE customers SET name = (SELECT name FROM archive WHERE id = 1) WHERE id = 2",
			[]string{"customers"},
		},
		{
			"batch separator is not an alias",
			"UPDATE sessions SET expired = 1 FROM sessions\nGO",
			[]string{"sessions"},
		},
		{
			"bare update",
			"UPDATE",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(StatementUpdate, tt.text, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_InsertMerge(t *testing.T) {
	tests := []struct {
		name string
		typ  StatementType
		text string
		want []string
	}{
		{
			"insert into",
			StatementInsert,
			"INSERT INTO orders (id, total) VALUES (1, 2)",
			[]string{"orders"},
		},
		{
			"insert without into",
			StatementInsert,
			"INSERT orders VALUES (1, 2)",
			[]string{"orders"},
		},
		{
			"insert select ignores source",
			StatementInsert,
			"INSERT INTO archive SELECT * FROM orders WHERE old = 1",
			[]string{"archive"},
		},
		{
			"merge into",
			StatementMerge,
			"MERGE INTO accounts USING staging ON accounts.id = staging.id WHEN MATCHED THEN UPDATE SET x = 1",
			[]string{"accounts"},
		},
		{
			"merge without into",
			StatementMerge,
			"MERGE accounts USING staging ON 1 = 1",
			[]string{"accounts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.typ, tt.text, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Delete(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"delete from",
			"DELETE FROM sessions WHERE expired = 1",
			[]string{"sessions"},
		},
		{
			"multi table",
			"DELETE o FROM orders o JOIN customers c ON o.cust_id = c.id",
			[]string{"orders", "customers"},
		},
		{
			"shorthand without from",
			"DELETE sessions WHERE id = 1",
			[]string{"sessions"},
		},
		{
			"bare delete",
			"DELETE",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(StatementDelete, tt.text, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Select(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"comma list",
			"SELECT o.id, c.name FROM orders o, customers c WHERE o.cid = c.id",
			[]string{"orders", "customers"},
		},
		{
			"join chain",
			"SELECT * FROM orders o LEFT JOIN customers c ON o.cid = c.id INNER JOIN items i ON i.oid = o.id",
			[]string{"orders", "customers", "items"},
		},
		{
			"subquery tables excluded",
			"SELECT * FROM accounts WHERE id IN (SELECT account_id FROM users)",
			[]string{"accounts"},
		},
		{
			"derived table skipped, join kept",
			"SELECT * FROM (SELECT 1 FROM hidden) x JOIN outer_t o ON 1 = 1",
			[]string{"outer_t"},
		},
		{
			"dedupe keeps first spelling",
			"SELECT * FROM Orders o JOIN ORDERS o2 ON o.id = o2.id",
			[]string{"Orders"},
		},
		{
			"comment inside from clause",
			"SELECT * FROM -- note\n orders",
			[]string{"orders"},
		},
		{
			"no from",
			"SELECT 1",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(StatementSelect, tt.text, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_QuotedTargets(t *testing.T) {
	got := Extract(StatementUpdate, `UPDATE "Order Details" SET qty = 0`, true)
	if !reflect.DeepEqual(got, []string{"Order Details"}) {
		t.Errorf("stripped: got %v", got)
	}

	got = Extract(StatementUpdate, `UPDATE "Order Details" SET qty = 0`, false)
	if !reflect.DeepEqual(got, []string{`"Order Details"`}) {
		t.Errorf("kept: got %v", got)
	}
}
