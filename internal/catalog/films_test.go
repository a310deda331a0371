package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starhub/pkg/models"
)

func TestSequelFilmsArePrePopulated(t *testing.T) {
	films := sequelFilms(testCDN)
	require.Len(t, films, 3)

	wantIDs := []string{"7", "8", "9"}
	for i, f := range films {
		assert.Equal(t, wantIDs[i], f.ID())
		assert.Equal(t, i+7, f.EpisodeID())
		assert.NotEmpty(t, f.Name())
		assert.Equal(t, testCDN+"/films/"+wantIDs[i]+".jpg", f.Image())
		assert.Empty(t, f["characters"])
	}
}

func TestMergeFilmsDeduplicatesAndSorts(t *testing.T) {
	upstream := []models.Record{
		{"id": "5", "title": "The Empire Strikes Back", "episode_id": float64(5)},
		{"id": "4", "title": "A New Hope", "episode_id": float64(4)},
		// upstream already knows episode seven; the augmentation copy must lose
		{"id": "7", "title": "The Force Awakens", "episode_id": float64(7), "director": "upstream"},
	}

	merged := mergeFilms(upstream, sequelFilms(testCDN))
	require.Len(t, merged, 5)

	episodes := make([]int, 0, len(merged))
	seen := map[string]bool{}
	for _, f := range merged {
		episodes = append(episodes, f.EpisodeID())
		assert.False(t, seen[f.ID()], "duplicate id %s", f.ID())
		seen[f.ID()] = true
	}
	assert.Equal(t, []int{4, 5, 7, 8, 9}, episodes)

	for _, f := range merged {
		if f.ID() == "7" {
			assert.Equal(t, "upstream", f["director"])
		}
	}
}

func TestMergeFilmsEmptyUpstream(t *testing.T) {
	merged := mergeFilms(nil, sequelFilms(testCDN))
	require.Len(t, merged, 3)
	assert.Equal(t, 7, merged[0].EpisodeID())
}
