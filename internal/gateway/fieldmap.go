package gateway

import (
	"fmt"
	"strings"
)

// fieldMapping declares one bidirectional domain-field to wire-column pair.
// Extended columns were added after the first deployed schema generation and
// may be absent on older stores; writes retry without them and reads default
// them.
type fieldMapping struct {
	domain   string
	wire     string
	extended bool
}

const (
	tableRooms        = "rooms"
	tableStays        = "stays"
	tableTasks        = "tasks"
	tableItems        = "items"
	tableRecipes      = "recipes"
	tableTransactions = "inventory_transactions"
)

var roomFields = []fieldMapping{
	{domain: "ID", wire: "id"},
	{domain: "Facility", wire: "facility"},
	{domain: "Code", wire: "room_code"},
	{domain: "Status", wire: "status"},
	{domain: "RoomType", wire: "room_type"},
	{domain: "Note", wire: "note"},
}

var stayFields = []fieldMapping{
	{domain: "ID", wire: "id"},
	{domain: "Facility", wire: "facility"},
	{domain: "RoomID", wire: "room_id"},
	{domain: "Status", wire: "status"},
	{domain: "CheckIn", wire: "checkin_date"},
	{domain: "CheckOut", wire: "checkout_date"},
	{domain: "ActualCheckIn", wire: "actual_checkin"},
	{domain: "ActualCheckOut", wire: "actual_checkout"},
	{domain: "Lendings", wire: "lendings_json"},
}

var taskFields = []fieldMapping{
	{domain: "ID", wire: "id"},
	{domain: "Facility", wire: "facility"},
	{domain: "RoomID", wire: "room_id"},
	{domain: "RoomCode", wire: "room_code"},
	{domain: "Kind", wire: "kind"},
	{domain: "Status", wire: "status"},
	{domain: "Priority", wire: "priority"},
	{domain: "Assignee", wire: "assignee"},
	{domain: "Points", wire: "points"},
	{domain: "CreatedAt", wire: "created_at"},
	{domain: "StartedAt", wire: "started_at"},
	{domain: "CompletedAt", wire: "completed_at"},
	{domain: "Checklist", wire: "checklist_json"},
	{domain: "Note", wire: "note"},
	{domain: "PhotoRefs", wire: "photo_refs", extended: true},
	{domain: "LinenExchanged", wire: "linen_exchanged", extended: true},
}

var itemFields = []fieldMapping{
	{domain: "ID", wire: "id"},
	{domain: "Name", wire: "item_name"},
	{domain: "Unit", wire: "unit"},
	{domain: "Category", wire: "category"},
	{domain: "OnHand", wire: "on_hand"},
	{domain: "InCirculation", wire: "in_circulation"},
	{domain: "InLaundry", wire: "in_laundry"},
	{domain: "VendorHeld", wire: "vendor_held", extended: true},
	{domain: "TotalAssets", wire: "total_assets"},
}

var recipeFields = []fieldMapping{
	{domain: "RoomType", wire: "room_type"},
	{domain: "ItemID", wire: "item_id"},
	{domain: "Quantity", wire: "quantity"},
	{domain: "Position", wire: "position"},
}

var transactionFields = []fieldMapping{
	{domain: "ID", wire: "id"},
	{domain: "ItemID", wire: "item_id"},
	{domain: "Delta", wire: "delta"},
	{domain: "Reason", wire: "reason"},
	{domain: "TaskID", wire: "task_id"},
	{domain: "RoomID", wire: "room_id"},
	{domain: "Facility", wire: "facility"},
	{domain: "CreatedAt", wire: "created_at"},
}

var entityFields = map[string][]fieldMapping{
	tableRooms:        roomFields,
	tableStays:        stayFields,
	tableTasks:        taskFields,
	tableItems:        itemFields,
	tableRecipes:      recipeFields,
	tableTransactions: transactionFields,
}

// validateFieldMaps checks every mapping table for duplicate names on either
// side. Called from Open so a bad table is caught before any query runs.
func validateFieldMaps() error {
	for table, fields := range entityFields {
		domains := make(map[string]struct{}, len(fields))
		wires := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			if field.domain == "" || field.wire == "" {
				return fmt.Errorf("field map %s: empty name in %+v", table, field)
			}
			if _, dup := domains[field.domain]; dup {
				return fmt.Errorf("field map %s: duplicate domain field %s", table, field.domain)
			}
			if _, dup := wires[field.wire]; dup {
				return fmt.Errorf("field map %s: duplicate wire column %s", table, field.wire)
			}
			domains[field.domain] = struct{}{}
			wires[field.wire] = struct{}{}
		}
	}
	return nil
}

func selectColumns(fields []fieldMapping, includeExtended bool) string {
	cols := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.extended && !includeExtended {
			continue
		}
		cols = append(cols, field.wire)
	}
	return strings.Join(cols, ", ")
}

// buildUpsert assembles an INSERT ... ON CONFLICT statement from a field map
// and a domain-keyed value set. Stripping extended columns for older schemas
// is a matter of passing includeExtended=false; the argument list stays in
// lockstep with the column list by construction.
func buildUpsert(table, conflictColumn string, fields []fieldMapping, values map[string]any, includeExtended bool) (string, []any, error) {
	cols := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	updates := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for _, field := range fields {
		if field.extended && !includeExtended {
			continue
		}
		value, ok := values[field.domain]
		if !ok {
			return "", nil, fmt.Errorf("upsert %s: no value for domain field %s", table, field.domain)
		}
		args = append(args, value)
		cols = append(cols, field.wire)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		if field.wire != conflictColumn {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", field.wire, field.wire))
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		conflictColumn,
		strings.Join(updates, ", "),
	)
	return query, args, nil
}

func buildInsert(table string, fields []fieldMapping, values map[string]any) (string, []any, error) {
	cols := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for _, field := range fields {
		value, ok := values[field.domain]
		if !ok {
			return "", nil, fmt.Errorf("insert %s: no value for domain field %s", table, field.domain)
		}
		args = append(args, value)
		cols = append(cols, field.wire)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args, nil
}
