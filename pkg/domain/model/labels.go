package model

import "strings"

// Labels maps field paths to human-readable Hebrew labels. Lookup falls back
// from the full path to the bare key, then to the raw path itself, so an
// unknown field still renders something usable.
type Labels map[string]string

// For returns the display label for a field path
func (l Labels) For(fieldPath string) string {
	if label, ok := l[fieldPath]; ok {
		return label
	}
	if idx := strings.LastIndex(fieldPath, "."); idx >= 0 {
		if label, ok := l[fieldPath[idx+1:]]; ok {
			return label
		}
	}
	return fieldPath
}

// Merge returns a copy of l overlaid with the entries of other
func (l Labels) Merge(other Labels) Labels {
	merged := make(Labels, len(l)+len(other))
	for path, label := range l {
		merged[path] = label
	}
	for path, label := range other {
		merged[path] = label
	}
	return merged
}

// DefaultLabels is the built-in Hebrew label dictionary for the appraisal
// wizard's field set. Deployments may overlay it via the labels TOML file.
var DefaultLabels = Labels{
	// Property identification
	"gush":               "גוש",
	"helka":              "חלקה",
	"tat_helka":          "תת חלקה",
	"registrationOffice": "לשכת רישום",
	"address":            "כתובת",
	"city":               "עיר",
	"street":             "רחוב",
	"houseNumber":        "מספר בית",
	"propertyType":       "סוג הנכס",

	// Physical description
	"floor":           "קומה",
	"apartmentNumber": "מספר דירה",
	"rooms":           "מספר חדרים",
	"registeredArea":  "שטח רשום",
	"builtArea":       "שטח בנוי",
	"landArea":        "שטח קרקע",
	"yearBuilt":       "שנת בנייה",
	"condition":       "מצב הנכס",

	// Land registry block
	"land_registry.gush":               "גוש",
	"land_registry.helka":              "חלקה",
	"land_registry.tat_helka":          "תת חלקה",
	"land_registry.owners":             "בעלים רשומים",
	"land_registry.registrationOffice": "לשכת רישום",
	"land_registry.attachments":        "הצמדות",

	// Building permit block
	"building_permit.permitNumber":   "מספר היתר",
	"building_permit.permitDate":     "תאריך היתר",
	"building_permit.permittedUse":   "שימוש מותר",
	"building_permit.buildingRights": "זכויות בנייה",

	// Shared building block
	"shared_building.buildingNumber":   "מספר מבנה",
	"shared_building.totalApartments":  "מספר דירות במבנה",
	"shared_building.sharedAreas":      "רכוש משותף",
	"shared_building.registrationDate": "תאריך רישום הבית המשותף",
}
