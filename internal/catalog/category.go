package catalog

import "fmt"

// Category is one of the fixed resource kinds served by the catalog.
type Category string

const (
	People    Category = "people"
	Planets   Category = "planets"
	Starships Category = "starships"
	Vehicles  Category = "vehicles"
	Species   Category = "species"
	Films     Category = "films"
)

// All lists every known category. The set is fixed at startup.
var All = []Category{People, Planets, Starships, Vehicles, Species, Films}

// ParseCategory maps a route segment to a known category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range All {
		if s == string(c) {
			return c, true
		}
	}
	return "", false
}

// imageDirs maps a category to its directory on the image CDN. The guide
// repository names the people directory "characters"; everything else
// matches the category name.
var imageDirs = map[Category]string{
	People:    "characters",
	Planets:   "planets",
	Starships: "starships",
	Vehicles:  "vehicles",
	Species:   "species",
	Films:     "films",
}

// ImageURL builds the CDN image URL for a record. Pure string templating,
// the URL is never verified to resolve.
func ImageURL(cdnBase string, cat Category, id string) string {
	return fmt.Sprintf("%s/%s/%s.jpg", cdnBase, imageDirs[cat], id)
}
