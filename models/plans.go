package models

import (
	"fmt"
	"strings"
)

// Plan is a subscription tier offered on the upsell panel
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthly_price"`
}

// Label formats the plan the way the upsell buttons show it
func (p Plan) Label() string {
	return fmt.Sprintf("%s - $%.0f/month", p.Name, p.MonthlyPrice)
}

// Plans lists the tiers in display order
var Plans = []Plan{
	{ID: "premium", Name: "Premium", MonthlyPrice: 29},
	{ID: "vip", Name: "VIP", MonthlyPrice: 79},
}

// FindPlan looks a plan up by ID, ignoring case
func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if strings.EqualFold(p.ID, id) {
			return p, true
		}
	}
	return Plan{}, false
}
