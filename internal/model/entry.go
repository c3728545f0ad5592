package model

import "time"

// NDTEntry is a single logged block of non-destructive-testing work
// hours, owned by exactly one user. Method and Company are free text,
// loosely normalized against the open-vocabulary lookup tables.
type NDTEntry struct {
	ID         string    `json:"id"`         // ndt_entries.id
	UserID     string    `json:"user_id"`    // ndt_entries.user_id
	EntryDate  string    `json:"entry_date"` // ndt_entries.entry_date (YYYY-MM-DD)
	Method     string    `json:"method"`     // ndt_entries.method
	Location   string    `json:"location"`   // ndt_entries.location
	Hours      float64   `json:"hours"`      // ndt_entries.hours (>= 0)
	Company    string    `json:"company"`    // ndt_entries.company
	Supervisor string    `json:"supervisor"` // ndt_entries.supervisor
	CreatedAt  time.Time `json:"created_at"` // ndt_entries.created_at
	UpdatedAt  time.Time `json:"updated_at"` // ndt_entries.updated_at
}

// RopeEntry is the rope-access counterpart of NDTEntry. It covers a
// date range and carries the technician's IRATA-style level.
type RopeEntry struct {
	ID            string    `json:"id"`             // rope_entries.id
	UserID        string    `json:"user_id"`        // rope_entries.user_id
	DateFrom      string    `json:"date_from"`      // rope_entries.date_from (YYYY-MM-DD)
	DateTo        string    `json:"date_to"`        // rope_entries.date_to (YYYY-MM-DD)
	Company       string    `json:"company"`        // rope_entries.company
	Location      string    `json:"location"`       // rope_entries.location
	Tasks         string    `json:"tasks"`          // rope_entries.tasks
	Industry      string    `json:"industry"`       // rope_entries.industry
	Details       string    `json:"details"`        // rope_entries.details
	Supervisor    string    `json:"supervisor"`     // rope_entries.supervisor
	RopeHours     float64   `json:"rope_hours"`     // rope_entries.rope_hours (>= 0)
	Level         string    `json:"level"`          // rope_entries.level (Level 1/2/3)
	SignatureHash *string   `json:"signature_hash"` // rope_entries.signature_hash (nullable)
	CreatedAt     time.Time `json:"created_at"`     // rope_entries.created_at
}

// RopeLevels enumerates the accepted values for RopeEntry.Level.
var RopeLevels = []string{"Level 1", "Level 2", "Level 3"}

// ValidRopeLevel reports whether lvl is one of the accepted rope-access levels.
func ValidRopeLevel(lvl string) bool {
	for _, l := range RopeLevels {
		if l == lvl {
			return true
		}
	}
	return false
}
