package domain

// CategoryUncategorized tags services whose label has no mapping.
const CategoryUncategorized = "uncategorized"

// poiCategoryLabels maps an OSM/Wikidata category to a display label.
var poiCategoryLabels = map[string]string{
	"fuel":        "Station-service",
	"restaurant":  "Restaurant",
	"pharmacy":    "Pharmacie",
	"parking":     "Parking",
	"convenience": "Supérette",
	"bakery":      "Boulangerie",
	"cafe":        "Café",
	"viewpoint":   "Point de vue",
	"attraction":  "Attraction",
	"beach":       "Plage",
}

// spotServiceCategories maps a scraped service label to a canonical category.
var spotServiceCategories = map[string]string{
	"Eaux usées":                     "sanitary_dump_station",
	"Eaux noires":                    "sanitary_dump_station",
	"Boulangerie":                    "shop",
	"Monuments à visiter":            "tourism",
	"Animaux autorisés":              "pets",
	"Eau potable":                    "drinking_water",
	"Poubelle":                       "waste_disposal",
	"Toilettes":                      "toilets",
	"Douches (accès possible)":       "shower",
	"Électricité (accès possible)":   "power_supply",
	"Accès internet par WiFi":        "internet_access",
	"Internet 3G/4G":                 "internet_access",
	"Laverie":                        "laundry",
	"Baignade possible":              "swimming",
	"Aire de jeux":                   "playground",
	"Pistes/balades de VTT":          "bicycle",
	"Départ de randonnées":           "hiking",
	"Point de vue":                   "viewpoint",
	"Coins de pêche":                 "fishing",
	"Pêche à pied":                   "fishing",
	"Windsurf/kitesurf (Spots de)":   "watersport",
	"Canoë/kayak (Base de)":          "canoe",
	"Dépannage en gaz":               "fuel",
	"Station GPL":                    "fuel",
	"Piscine":                        "swimming_pool",
	"Belle balade à moto":            "motorcycle",
	"Escalade (Sites d')":            "climbing",
}

// POICategoryLabel returns the display label for a POI category, falling back
// to the category itself.
func POICategoryLabel(category string) string {
	if label, ok := poiCategoryLabels[category]; ok {
		return label
	}
	return category
}

// SpotServiceCategory returns the canonical category for a scraped service
// label. Unmapped labels are tagged CategoryUncategorized rather than dropped.
func SpotServiceCategory(label string) string {
	if category, ok := spotServiceCategories[label]; ok {
		return category
	}
	return CategoryUncategorized
}
