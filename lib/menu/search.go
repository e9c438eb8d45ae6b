package menu

import (
	"frsmenu/lib/scrapers/frs"
	"frsmenu/lib/textutil"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const DefaultSearchThreshold = 0.85

type Match struct {
	Day   frs.Day
	Meal  string
	Food  frs.Food
	Score float64
}

func similarity(query, name string) float64 {
	best := matchr.JaroWinkler(query, name, false)
	for _, word := range strings.Fields(name) {
		score := matchr.JaroWinkler(query, word, false)
		if score > best {
			best = score
		}
	}
	return best
}

// Search looks for foods whose name is close to query, best matches first.
// Substring hits always match, ignoring spaces and ZWNJ so "قورمه‌سبزی"
// finds "قورمه سبزی". Everything else is scored with Jaro-Winkler
// against the whole name and against each of its words.
func Search(days []frs.Day, query string, threshold float64) []Match {
	query = textutil.Fold(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	compact := []string{textutil.NormalizeName(query)}

	var matches []Match
	for _, day := range days {
		for _, meal := range day.Meals {
			for _, food := range meal.FoodMenu {
				score := 1.0
				if !textutil.MatchName(food.FoodName, compact) {
					score = similarity(query, textutil.Fold(food.FoodName))
				}
				if score < threshold {
					continue
				}
				matches = append(matches, Match{
					Day:   day,
					Meal:  meal.MealName,
					Food:  food,
					Score: score,
				})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
