package catalog

import (
	"sort"

	"starhub/pkg/models"
)

// Transform is a post-processing hook applied to a category's enriched
// collection before it is published to the store.
type Transform func(items []models.Record) []models.Record

// sequelFilms is the hand-authored augmentation set for the films category.
// The upstream catalog stops at episode six; these fill the gap. Relation
// lists are intentionally empty and the canonical URLs are synthetic, in the
// upstream's own URL format.
func sequelFilms(cdnBase string) []models.Record {
	films := []models.Record{
		{
			"title":         "The Force Awakens",
			"episode_id":    7,
			"opening_crawl": "Luke Skywalker has vanished. In his absence, the sinister FIRST ORDER has risen from the ashes of the Empire and will not rest until Skywalker, the last Jedi, has been destroyed.",
			"director":      "J.J. Abrams",
			"producer":      "Kathleen Kennedy, J.J. Abrams, Bryan Burk",
			"release_date":  "2015-12-18",
			"url":           "https://swapi.info/api/films/7",
		},
		{
			"title":         "The Last Jedi",
			"episode_id":    8,
			"opening_crawl": "The FIRST ORDER reigns. Having decimated the peaceful Republic, Supreme Leader Snoke now deploys his merciless legions to seize military control of the galaxy.",
			"director":      "Rian Johnson",
			"producer":      "Kathleen Kennedy, Ram Bergman",
			"release_date":  "2017-12-15",
			"url":           "https://swapi.info/api/films/8",
		},
		{
			"title":         "The Rise of Skywalker",
			"episode_id":    9,
			"opening_crawl": "The dead speak! The galaxy has heard a mysterious broadcast, a threat of REVENGE in the sinister voice of the late EMPEROR PALPATINE.",
			"director":      "J.J. Abrams",
			"producer":      "Kathleen Kennedy, J.J. Abrams, Michelle Rejwan",
			"release_date":  "2019-12-20",
			"url":           "https://swapi.info/api/films/9",
		},
	}

	for _, f := range films {
		id := idFromURL(f.URL())
		f["id"] = id
		f["image"] = ImageURL(cdnBase, Films, id)
		for _, rel := range []string{"characters", "planets", "starships", "vehicles", "species"} {
			f[rel] = []string{}
		}
	}
	return films
}

// mergeFilms appends every extra record whose id is not already present,
// upstream records taking precedence, and sorts the merged collection by
// episode_id ascending.
func mergeFilms(items, extra []models.Record) []models.Record {
	seen := make(map[string]bool, len(items))
	for _, r := range items {
		seen[r.ID()] = true
	}

	out := make([]models.Record, 0, len(items)+len(extra))
	out = append(out, items...)
	for _, r := range extra {
		if !seen[r.ID()] {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EpisodeID() < out[j].EpisodeID()
	})
	return out
}

// filmsTransform is the films post-processing hook: merge in the
// augmentation set, then order by episode.
func filmsTransform(cdnBase string) Transform {
	extra := sequelFilms(cdnBase)
	return func(items []models.Record) []models.Record {
		return mergeFilms(items, extra)
	}
}
