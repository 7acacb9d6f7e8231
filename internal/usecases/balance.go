package usecases

import (
	"math"
	"sort"
	"strings"

	"focus_forge/internal/models"
)

const (
	neglectedRate  = 0.25
	trendDeadband  = 5
	DefaultBalance = 7
	MaxBalanceDays = 90
)

// Weights maps category to its share of the balance score.
type Weights map[string]float64

var DefaultWeights = Weights{
	models.CategoryHealth:        1.2,
	models.CategoryWork:          1.0,
	models.CategoryRelationships: 1.0,
	models.CategoryPersonal:      0.8,
	models.CategoryHome:          0.6,
	models.CategoryLearning:      0.8,
}

// MergeWeights applies overrides for known categories. Zero drops a
// category from scoring.
func MergeWeights(overrides map[string]float64) Weights {
	w := make(Weights, len(DefaultWeights))
	for c, v := range DefaultWeights {
		w[c] = v
	}
	for c, v := range overrides {
		c = strings.ToLower(c)
		if _, known := DefaultWeights[c]; known && v >= 0 {
			w[c] = v
		}
	}
	return w
}

// Balance scores tasks that were active in one window. Open tasks count
// against their category, done tasks for it.
func Balance(tasks []models.Task, weights Weights) (int, []models.CategoryBalance, []string) {
	byCat := make(map[string]*models.CategoryBalance, len(weights))
	for c, w := range weights {
		if w > 0 {
			byCat[c] = &models.CategoryBalance{Category: c, Weight: w}
		}
	}

	for _, t := range tasks {
		cb, ok := byCat[models.NormalizeCategory(t.Category)]
		if !ok {
			continue
		}
		if t.Done() {
			cb.Done++
		} else {
			cb.Open++
		}
	}

	var weighted, totalWeight float64
	categories := make([]models.CategoryBalance, 0, len(byCat))
	neglected := []string{}

	for _, cb := range byCat {
		n := cb.Done + cb.Open
		rate := 0.0
		if n > 0 {
			rate = float64(cb.Done) / float64(n)
			cb.Rate = math.Round(rate*100) / 100
			weighted += cb.Weight * rate
			totalWeight += cb.Weight
		}
		if n == 0 || rate < neglectedRate {
			neglected = append(neglected, cb.Category)
		}
		categories = append(categories, *cb)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Weight != categories[j].Weight {
			return categories[i].Weight > categories[j].Weight
		}
		return categories[i].Category < categories[j].Category
	})
	sort.Strings(neglected)

	if totalWeight == 0 {
		return 0, categories, neglected
	}
	return int(math.Round(weighted / totalWeight * 100)), categories, neglected
}

// BalanceReport scores the current window and compares it with the one
// before it.
func BalanceReport(current, previous []models.Task, weights Weights, days int) models.BalanceReport {
	score, categories, neglected := Balance(current, weights)
	prevScore, _, _ := Balance(previous, weights)

	delta := score - prevScore
	direction := "flat"
	switch {
	case delta >= trendDeadband:
		direction = "up"
	case delta <= -trendDeadband:
		direction = "down"
	}

	return models.BalanceReport{
		Score:      score,
		Days:       days,
		Categories: categories,
		Neglected:  neglected,
		Trend: models.BalanceTrend{
			Previous:  prevScore,
			Delta:     delta,
			Direction: direction,
		},
	}
}
