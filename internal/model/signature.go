package model

import "time"

// Signature request statuses. The transition is monotonic: a request
// starts Pending and may only ever move to Confirmed.
const (
	SignatureStatusPending   = "Pending"
	SignatureStatusConfirmed = "Confirmed"
)

// NDTSignature is a request for third-party supervisor attestation of
// an NDT hours entry. The entry details are denormalized onto the row
// so the verification page can render without joining back to a record
// the technician may later edit.
//
// AutoSignature and TimestampHash are tamper-evidence fields populated
// by the external verification collaborator; this service stores them
// pass-through and performs no hashing of its own.
type NDTSignature struct {
	ID               string     `json:"id"`                // ndt_signatures.id
	EntryID          string     `json:"entry_id"`          // ndt_signatures.entry_id
	TechnicianID     string     `json:"technician_id"`     // ndt_signatures.technician_id
	TechnicianName   string     `json:"technician_name"`   // ndt_signatures.technician_name
	Hours            float64    `json:"hours"`             // ndt_signatures.hours
	Method           string     `json:"method"`            // ndt_signatures.method
	SupervisorName   string     `json:"supervisor_name"`   // ndt_signatures.supervisor_name
	SupervisorEmail  string     `json:"supervisor_email"`  // ndt_signatures.supervisor_email
	Company          string     `json:"company"`           // ndt_signatures.company
	Token            string     `json:"-"`                 // ndt_signatures.token (never serialized to listings)
	Status           string     `json:"status"`            // ndt_signatures.status
	AutoSignature    string     `json:"auto_signature"`    // ndt_signatures.auto_signature
	VerificationDate *time.Time `json:"verification_date"` // ndt_signatures.verification_date (nullable)
	TimestampHash    *string    `json:"timestamp_hash"`    // ndt_signatures.timestamp_hash (nullable)
	CreatedAt        time.Time  `json:"created_at"`        // ndt_signatures.created_at
	UpdatedAt        time.Time  `json:"updated_at"`        // ndt_signatures.updated_at
}

// RopeSignature is the rope-access variant of NDTSignature. It carries
// fewer denormalized fields because the verification page looks the
// entry up by id.
type RopeSignature struct {
	ID               string     `json:"id"`                // rope_signatures.id
	EntryID          string     `json:"entry_id"`          // rope_signatures.entry_id
	TechnicianID     string     `json:"technician_id"`     // rope_signatures.technician_id
	TechnicianName   string     `json:"technician_name"`   // rope_signatures.technician_name
	SupervisorName   string     `json:"supervisor_name"`   // rope_signatures.supervisor_name
	SupervisorEmail  string     `json:"supervisor_email"`  // rope_signatures.supervisor_email
	Token            string     `json:"-"`                 // rope_signatures.token
	Status           string     `json:"status"`            // rope_signatures.status
	VerificationDate *time.Time `json:"verification_date"` // rope_signatures.verification_date (nullable)
	TimestampHash    *string    `json:"timestamp_hash"`    // rope_signatures.timestamp_hash (nullable)
	CreatedAt        time.Time  `json:"created_at"`        // rope_signatures.created_at
}

// SignatureStatusRef is the minimal projection used for dashboard
// counting; only the status column is fetched.
type SignatureStatusRef struct {
	Status string `json:"status"`
}
