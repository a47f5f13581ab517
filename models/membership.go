package models

import "github.com/shopspring/decimal"

// MembershipPlan is one pricing card on the gym page.
type MembershipPlan struct {
	Name      string
	Price     decimal.Decimal
	Billing   string
	Features  []string
	Highlight bool
}

// MembershipPlans returns the gym's plans in display order.
func MembershipPlans() []MembershipPlan {
	return []MembershipPlan{
		{
			Name:     "Day Pass",
			Price:    decimal.NewFromInt(15),
			Billing:  "visit",
			Features: []string{"Full gym access", "Locker use", "Towel service", "Valid for 24 hours"},
		},
		{
			Name:      "Monthly",
			Price:     decimal.NewFromInt(49),
			Billing:   "month",
			Highlight: true,
			Features:  []string{"24/7 Keycard Access", "All Classes Included", "1 Free PT Session", "10% Off Supplements", "Cancel Anytime"},
		},
		{
			Name:     "Annual",
			Price:    decimal.NewFromInt(39),
			Billing:  "mo (billed annually)",
			Features: []string{"Everything in Monthly", "2 Months Free", "Priority Class Booking", "Exclusive Merch Kit", "Free Guest Pass/Month"},
		},
	}
}
