package services

import (
	"strings"

	"github.com/arogyapath/backend/internal/domain/entities"
)

// Government hospital naming conventions: administrative bodies, public
// institutes and primary/community health center abbreviations.
var governmentKeywords = []string{
	"GOVT", "GOVERNMENT", "GOV.", "GOV ",
	"CIVIL HOSPITAL", "DISTRICT HOSPITAL", "SDH",
	"PRIMARY HEALTH", "PHC", "CHC", "COMMUNITY HEALTH",
	"AIIMS", "GMC", "MEDICAL COLLEGE",
	"REFERRAL HOSPITAL", "REGIONAL HOSPITAL",
	"ESI HOSPITAL", "RAILWAY HOSPITAL",
	"STATE HOSPITAL", "CENTRAL HOSPITAL",
	"MUNICIPAL HOSPITAL", "CORPORATION HOSPITAL",
	"JANANA HOSPITAL", "MATERNITY HOSPITAL",
	"PT JLNGMC", "DR RPGMC", "IGMC", "PGI",
	"SUB DISTRICT HOSPITAL", "TALUKA HOSPITAL",
	"BLOCK PHC", "ASHA", "ANGANWADI",
}

// Private hospital naming conventions: named chains, legal-entity suffixes
// and private-facility type words.
var privateKeywords = []string{
	"PVT", "PRIVATE", "LTD", "LIMITED",
	"APOLLO", "FORTIS", "MAX", "MEDANTA",
	"MANIPAL", "NARAYANA", "CLOUDNINE",
	"CLINIC", "NURSING HOME", "POLYCLINIC",
	"HOSPITAL & RESEARCH", "MULTISPECIALITY",
	"DENTAL CLINIC", "EYE HOSPITAL",
}

// ClassifyOwnership derives the ownership category from the hospital name.
// Government indicators take precedence over private ones when both match.
func ClassifyOwnership(hospitalName string) entities.OwnershipType {
	name := strings.ToUpper(hospitalName)

	for _, keyword := range governmentKeywords {
		if strings.Contains(name, keyword) {
			return entities.OwnershipGovernment
		}
	}

	for _, keyword := range privateKeywords {
		if strings.Contains(name, keyword) {
			return entities.OwnershipPrivate
		}
	}

	return entities.OwnershipUnknown
}
