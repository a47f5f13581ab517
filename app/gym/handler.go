package gym

import (
	"net/http"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/models"
)

type Plan struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Billing   string   `json:"billing"`
	Features  []string `json:"features"`
	Highlight bool     `json:"highlight"`
}

// NewPlans maps membership plans to their pricing cards.
func NewPlans(plans []models.MembershipPlan) []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		out[i] = Plan{
			Name:      p.Name,
			Price:     p.Price.InexactFloat64(),
			Billing:   p.Billing,
			Features:  append([]string{}, p.Features...),
			Highlight: p.Highlight,
		}
	}
	return out
}

func HandleGetPlans(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, r, http.StatusOK, NewPlans(models.MembershipPlans()))
}
