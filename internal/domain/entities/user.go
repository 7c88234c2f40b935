package entities

import "time"

// User types.
const (
	UserTypeDoctor   = "Doctor"
	UserTypePatient  = "Patient"
	UserTypeHospital = "Hospital"
)

// User is a registered account. Doctor accounts carry the professional fields
// and are a second, independently evolving representation of "doctor" data;
// hospital accounts carry a roster of doctor user ids.
type User struct {
	ID        string `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"`
	UserType  string `json:"user_type" db:"user_type"`
	Age       int    `json:"age,omitempty" db:"age"`
	Gender    string `json:"gender,omitempty" db:"gender"`

	// Doctor profile fields, used when UserType == UserTypeDoctor.
	Specialty        string    `json:"specialty,omitempty" db:"specialty"`
	Experience       int       `json:"experience,omitempty" db:"experience"`
	Degree           string    `json:"degree,omitempty" db:"degree"`
	Languages        []string  `json:"languages,omitempty" db:"-"`
	About            string    `json:"about,omitempty" db:"about"`
	Address          string    `json:"address,omitempty" db:"address"`
	PhotoURL         string    `json:"photo_url,omitempty" db:"photo_url"`
	Location         *Location `json:"location,omitempty" db:"-"`
	DoctorReviewIDs  []string  `json:"doctor_review_ids,omitempty" db:"-"`
	ProfileCompleted bool      `json:"profile_completed" db:"profile_completed"`

	// Hospital account fields, used when UserType == UserTypeHospital.
	HospitalName    string   `json:"hospital_name,omitempty" db:"hospital_name"`
	HospitalAddress string   `json:"hospital_address,omitempty" db:"hospital_address"`
	HospitalPhone   string   `json:"hospital_phone,omitempty" db:"hospital_phone"`
	HospitalAbout   string   `json:"hospital_about,omitempty" db:"hospital_about"`
	DoctorIDs       []string `json:"doctor_ids,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DisplayName joins the user's first and last names.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
