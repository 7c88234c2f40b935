package entities

import "strings"

// Practitioner source variants.
const (
	SourceCuratedDoctor        = "curated_doctor"
	SourceCuratedHospital      = "curated_hospital"
	SourceRegisteredDoctorUser = "registered_doctor_user"
)

// PractitionerRecord is the normalized, source-agnostic search result shape.
// Callers never need to branch on SourceVariant; every field is populated the
// same way regardless of which store the hit came from.
type PractitionerRecord struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Specialties []string `json:"specialties"`
	Experience  int      `json:"experience,omitempty"`
	Degree      string   `json:"degree,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Address     string   `json:"address,omitempty"`
	About       string   `json:"about,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Location    Location `json:"location"`
	ReviewIDs   []string `json:"review_ids"`

	// DistanceMeters is populated only for hospital hits, whose geo query
	// computes an explicit distance for display.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	SourceVariant string `json:"source_variant"`
}

// PractitionerFromDoctor normalizes a curated doctor into the shared record shape.
func PractitionerFromDoctor(d *Doctor) *PractitionerRecord {
	return &PractitionerRecord{
		ID:            d.ID,
		DisplayName:   d.Name,
		Specialties:   []string{d.Specialty},
		Experience:    d.Experience,
		Degree:        d.Degree,
		Languages:     d.Languages,
		Address:       d.Address,
		About:         d.About,
		PhotoURL:      d.PhotoURL,
		Location:      d.Location,
		ReviewIDs:     d.ReviewIDs,
		SourceVariant: SourceCuratedDoctor,
	}
}

// PractitionerFromHospital normalizes a facility hit, carrying the computed distance.
func PractitionerFromHospital(h *Hospital, distanceMeters float64) *PractitionerRecord {
	return &PractitionerRecord{
		ID:             h.ID,
		DisplayName:    h.Name,
		Specialties:    h.Specialties,
		Address:        formatAddress(h.Address),
		About:          h.About,
		Location:       h.Location,
		ReviewIDs:      h.ReviewIDs,
		DistanceMeters: &distanceMeters,
		SourceVariant:  SourceCuratedHospital,
	}
}

// PractitionerFromUser normalizes a registered doctor user, renaming the
// first/last name pair and the doctor review refs into the shared shape.
func PractitionerFromUser(u *User) *PractitionerRecord {
	record := &PractitionerRecord{
		ID:            u.ID,
		DisplayName:   u.DisplayName(),
		Specialties:   []string{u.Specialty},
		Experience:    u.Experience,
		Degree:        u.Degree,
		Languages:     u.Languages,
		Address:       u.Address,
		About:         u.About,
		PhotoURL:      u.PhotoURL,
		ReviewIDs:     u.DoctorReviewIDs,
		SourceVariant: SourceRegisteredDoctorUser,
	}
	if u.Location != nil {
		record.Location = *u.Location
	}
	return record
}

func formatAddress(a Address) string {
	parts := []string{}
	for _, part := range []string{a.Street, a.District, a.State, a.Postcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
