// Package specialty infers medical specialties from free-text facility names.
package specialty

import (
	"regexp"
	"sort"
	"strings"
)

// Tag is a canonical lowercase identifier for a medical specialization.
type Tag = string

// GeneralPhysician is the fallback tag for unclassifiable names.
const GeneralPhysician Tag = "general_physician"

// keywordTable maps each canonical tag to its lowercase trigger keywords.
// Loaded once at init into compiled matchers; treated as immutable afterwards.
var keywordTable = map[Tag][]string{
	"cardiologist": {
		"cardio", "cardiology", "heart", "cardiac", "heart care",
	},
	"dermatologist": {
		"derma", "dermatology", "skin", "skin care", "cosmetic", "aesthetic",
	},
	"dentist": {
		"dental", "dentist", "tooth", "teeth", "oral", "maxillofacial",
	},
	"ent": {
		"ent", "ear", "nose", "throat", "otolaryngology",
	},
	"endocrinologist": {
		"endocrine", "endocrinology", "diabetes", "diabetic", "thyroid", "hormone",
	},
	"ophthalmologist": {
		"eye", "ophthalmology", "vision", "optical", "eye care", "eye hospital",
	},
	GeneralPhysician: {
		"general", "physician", "medicine", "medical", "hospital", "clinic", "health care",
	},
	"gynecologist": {
		"gyn", "gynaec", "gynecologist", "gynecology", "maternity", "women", "obstetric", "obg",
	},
	"neurologist": {
		"neuro", "neurology", "brain", "spine", "nerve",
	},
	"orthopedic": {
		"ortho", "orthopedic", "bone", "joint", "fracture", "spine",
	},
	"pediatrician": {
		"pediatric", "paediatric", "child", "children", "kids", "neonatal",
	},
	"psychiatrist": {
		"psychiatry", "psychiatrist", "mental", "mental health", "depression", "anxiety",
	},
}

type matcher struct {
	tag      Tag
	patterns []*regexp.Regexp
}

var matchers []matcher

func init() {
	tags := make([]Tag, 0, len(keywordTable))
	for tag := range keywordTable {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		m := matcher{tag: tag}
		for _, keyword := range keywordTable[tag] {
			m.patterns = append(m.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(keyword)+`\b`))
		}
		matchers = append(matchers, m)
	}
}

// Classify maps a facility name to the specialty tags its wording implies.
// Matching is case-insensitive and whole-word; a tag is included as soon as
// one of its keywords matches, so a name can yield several tags, or none at
// all. Blank input yields the general physician fallback. The result is sorted.
func Classify(name string) []Tag {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return []Tag{GeneralPhysician}
	}

	var detected []Tag
	for _, m := range matchers {
		for _, pattern := range m.patterns {
			if pattern.MatchString(trimmed) {
				detected = append(detected, m.tag)
				break
			}
		}
	}

	return detected
}

// Tags returns the canonical tag set in sorted order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(matchers))
	for _, m := range matchers {
		tags = append(tags, m.tag)
	}
	return tags
}
