package entities

// Doctor is a curated practitioner record. All fields are required at creation.
type Doctor struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	PhotoURL   string   `json:"photo_url" db:"photo_url"`
	Specialty  string   `json:"specialty" db:"specialty"`
	Experience int      `json:"experience" db:"experience"`
	Degree     string   `json:"degree" db:"degree"`
	Languages  []string `json:"languages" db:"-"`
	Address    string   `json:"address" db:"address"`
	About      string   `json:"about" db:"about"`
	Location   Location `json:"location" db:"-"`
	ReviewIDs  []string `json:"review_ids" db:"-"`
}

// Location holds geographical coordinates.
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
