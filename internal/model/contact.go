package model

import "time"

// Contact inquiry types. Stored as-is; the DB enforces the same set.
const (
	ContactTypeBusiness = "Business"
	ContactTypeGeneral  = "General"
	ContactTypeSupport  = "Support"
	ContactTypeOther    = "Other"
)

// ValidContactType reports whether t is one of the known inquiry types.
func ValidContactType(t string) bool {
	switch t {
	case ContactTypeBusiness, ContactTypeGeneral, ContactTypeSupport, ContactTypeOther:
		return true
	}
	return false
}

// Contact represents one contact-form submission.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListOptions carries pagination parameters for listing contacts.
type ContactListOptions struct {
	Limit  int
	Offset int
}

// StatCount is one group-by-count row. The `_id` key mirrors the wire shape
// the admin dashboard already consumes.
type StatCount struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// ContactStats is the payload for GET /api/contacts/stats.
type ContactStats struct {
	TotalContacts int          `json:"totalContacts"`
	TypeStats     []*StatCount `json:"typeStats"`
	RegionStats   []*StatCount `json:"regionStats"`
	CityStats     []*StatCount `json:"cityStats"`
}
