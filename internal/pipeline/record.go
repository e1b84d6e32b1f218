package pipeline

import "strconv"

// Header is the first row of the output table.
var Header = []string{"frame", "player name", "weapon 1", "weapon 2"}

// Record is the extraction result for one frame. Unresolved fields are empty.
type Record struct {
	Frame      int
	PlayerName string
	Weapons    [MaxWeaponSlots]string

	// Suppressed is set when the frame contributes no row because its player
	// name did not resolve and the layout aborts such frames.
	Suppressed bool

	// Fields holds the per-field outcomes in evaluation order. Fields that
	// were never evaluated (weapons after an aborted player) are absent.
	Fields []FieldResult
}

// Row formats the record as an output table row matching Header.
func (r Record) Row() []string {
	row := make([]string, 0, len(Header))
	row = append(row, strconv.Itoa(r.Frame), r.PlayerName)
	row = append(row, r.Weapons[:]...)
	return row
}
