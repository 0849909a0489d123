package catalog

import (
	"fmt"

	"github.com/digkill/cinexa/internal/models"
)

var plans = map[models.PlanType]models.Plan{
	models.PlanFree: {
		ID:              models.PlanFree,
		Name:            "Free Starter",
		Price:           0,
		Credits:         10,
		MaxVideoMinutes: 5,
		Watermark:       true,
		Features:        []string{"Watermarked videos", "720p quality", "Basic support"},
	},
	models.PlanPlus: {
		ID:              models.PlanPlus,
		Name:            "Plus Creator",
		Price:           29,
		Credits:         100,
		MaxVideoMinutes: 20,
		Watermark:       false,
		Features:        []string{"No watermark", "1080p quality", "Premium voices", "Fast generation"},
	},
	models.PlanPremium: {
		ID:              models.PlanPremium,
		Name:            "Pro Studio",
		Price:           99,
		Credits:         500,
		MaxVideoMinutes: 80,
		Watermark:       false,
		Features:        []string{"4K quality", "Highest priority", "API access", "80 minute videos"},
	},
}

var planOrder = []models.PlanType{models.PlanFree, models.PlanPlus, models.PlanPremium}

// Plan returns the catalog entry for id.
func Plan(id models.PlanType) (models.Plan, error) {
	p, ok := plans[id]
	if !ok {
		return models.Plan{}, fmt.Errorf("unknown plan %q", id)
	}
	return clonePlan(p), nil
}

// Plans lists every plan from the cheapest to the most expensive.
func Plans() []models.Plan {
	out := make([]models.Plan, 0, len(planOrder))
	for _, id := range planOrder {
		out = append(out, clonePlan(plans[id]))
	}
	return out
}

func clonePlan(p models.Plan) models.Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}
