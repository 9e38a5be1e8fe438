package gateway

import (
	"strings"
	"testing"
)

func TestValidateFieldMaps(t *testing.T) {
	if err := validateFieldMaps(); err != nil {
		t.Fatalf("field maps must validate: %v", err)
	}
}

func TestSelectColumnsStripsExtended(t *testing.T) {
	full := selectColumns(taskFields, true)
	if !strings.Contains(full, "photo_refs") || !strings.Contains(full, "linen_exchanged") {
		t.Fatalf("expected extended columns in %q", full)
	}
	stripped := selectColumns(taskFields, false)
	if strings.Contains(stripped, "photo_refs") || strings.Contains(stripped, "linen_exchanged") {
		t.Fatalf("expected extended columns stripped from %q", stripped)
	}
}

func TestBuildUpsertKeepsColumnsAndArgsInLockstep(t *testing.T) {
	values := map[string]any{}
	for _, field := range itemFields {
		values[field.domain] = field.domain
	}

	query, args, err := buildUpsert(tableItems, "id", itemFields, values, false)
	if err != nil {
		t.Fatalf("buildUpsert returned error: %v", err)
	}
	if strings.Contains(query, "vendor_held") {
		t.Fatalf("expected the extended column stripped from %q", query)
	}
	if len(args) != len(itemFields)-1 {
		t.Fatalf("expected %d args, got %d", len(itemFields)-1, len(args))
	}
	if !strings.Contains(query, "ON CONFLICT (id) DO UPDATE SET") {
		t.Fatalf("expected an upsert, got %q", query)
	}
	if strings.Contains(query, "id = EXCLUDED.id") {
		t.Fatalf("the conflict column must not be updated: %q", query)
	}
}

func TestBuildUpsertRejectsMissingValues(t *testing.T) {
	if _, _, err := buildUpsert(tableItems, "id", itemFields, map[string]any{}, true); err == nil {
		t.Fatal("expected an error for missing values")
	}
}

func TestBuildInsertCoversAllFields(t *testing.T) {
	values := map[string]any{}
	for _, field := range transactionFields {
		values[field.domain] = field.domain
	}
	query, args, err := buildInsert(tableTransactions, transactionFields, values)
	if err != nil {
		t.Fatalf("buildInsert returned error: %v", err)
	}
	if len(args) != len(transactionFields) {
		t.Fatalf("expected %d args, got %d", len(transactionFields), len(args))
	}
	if !strings.HasPrefix(query, "INSERT INTO inventory_transactions") {
		t.Fatalf("unexpected query %q", query)
	}
}
