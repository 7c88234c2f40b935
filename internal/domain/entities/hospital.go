package entities

// Hospital is a facility record, either curated or discovered through
// background enrichment from the external geodata source.
//
// (Name, Location) is the upsert key: repeated enrichment passes over the same
// live facility replace the row instead of duplicating it.
type Hospital struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Type        string   `json:"type" db:"type"`
	Specialties []string `json:"specialties" db:"-"`
	Address     Address  `json:"address" db:"-"`
	About       string   `json:"about" db:"about"`
	Location    Location `json:"location" db:"-"`
	ReviewIDs   []string `json:"review_ids" db:"-"`
}

// Address holds the structured facility address. Every field is optional;
// enrichment fills in whatever addr:* tags the source node carries.
type Address struct {
	Street   string `json:"street" db:"street"`
	District string `json:"district" db:"district"`
	State    string `json:"state" db:"state"`
	Postcode string `json:"postcode" db:"postcode"`
}