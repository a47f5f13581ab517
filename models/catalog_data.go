package models

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func comparePrice(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(price(s))
}

// SeedProducts returns a fresh copy of the storefront's product list, in display order.
func SeedProducts() []Product {
	products := []Product{
		{
			ID:             "p1",
			Name:           "Gold Standard 100% Whey",
			Brand:          "Optimum Nutrition",
			Category:       "Protein",
			Description:    "The world's best-selling whey protein powder. 24g of protein per serving to help build and maintain muscle.",
			Price:          price("74.99"),
			CompareAtPrice: comparePrice("89.99"),
			Image:          "/assets/Protien.jpg",
			Rating:         4.9,
			ReviewCount:    2341,
			Badges:         Badges{BadgeBestseller},
			Variants: []Variant{
				{Size: "5lb", Flavor: "Double Rich Chocolate", Price: price("74.99"), InStock: true},
				{Size: "5lb", Flavor: "Vanilla Ice Cream", Price: price("74.99"), InStock: true},
			},
			Benefits: StringList{"24g Protein", "5.5g BCAAs", "Gluten Free"},
		},
		{
			ID:          "p2",
			Name:        "Mutant Mass Gainer",
			Brand:       "Mutant",
			Category:    "Muscle Building",
			Description: "Designed for the hardgainer. High calorie weight gainer with 56g of protein and 192g of clean carbs.",
			Price:       price("64.99"),
			Image:       "/assets/Protien.jpg",
			Rating:      4.7,
			ReviewCount: 856,
			Badges:      Badges{BadgeSale},
			Variants: []Variant{
				{Size: "15lb", Flavor: "Triple Chocolate", Price: price("64.99"), InStock: true},
			},
			Benefits: StringList{"1100 Calories", "56g Protein", "Whole Food Carbs"},
		},
		{
			ID:          "p3",
			Name:        "C4 Original Pre-Workout",
			Brand:       "Cellucor",
			Category:    "Pre-Workout",
			Description: "Explosive energy, heightened focus and an overwhelming urge to tackle any challenge.",
			Price:       price("39.99"),
			Image:       "/assets/Protien.jpg",
			Rating:      4.8,
			ReviewCount: 5420,
			Badges:      Badges{BadgeBestseller},
			Variants: []Variant{
				{Size: "30 Servings", Flavor: "Icy Blue Razz", Price: price("39.99"), InStock: true},
				{Size: "30 Servings", Flavor: "Fruit Punch", Price: price("39.99"), InStock: true},
			},
			Benefits: StringList{"150mg Caffeine", "1.6g Beta-Alanine", "Creatine Nitrate"},
		},
		{
			ID:          "p4",
			Name:        "Iso-Surge Isolate",
			Brand:       "Mutant",
			Category:    "Protein",
			Description: "High speed absorption to get protein into your muscle tissue FAST.",
			Price:       price("49.99"),
			Image:       "/assets/Protien.jpg",
			Rating:      4.9,
			ReviewCount: 120,
			Badges:      Badges{BadgeNew},
			Variants: []Variant{
				{Size: "1.6lb", Flavor: "Pineapple Coconut", Price: price("49.99"), InStock: true},
			},
			Benefits: StringList{"25g Isolate", "Low Carb", "Gourmet Taste"},
		},
		{
			ID:          "p5",
			Name:        "Creatine Monohydrate",
			Brand:       "Peak House",
			Category:    "Essentials",
			Description: "Pure micronized creatine monohydrate for improved strength and power output.",
			Price:       price("29.99"),
			Image:       "/assets/Protien.jpg",
			Rating:      5.0,
			ReviewCount: 42,
			Badges:      Badges{},
			Variants: []Variant{
				{Size: "400g", Flavor: "Unflavored", Price: price("29.99"), InStock: true},
			},
			Benefits: StringList{"Micronized", "Lab Tested", "Vegan"},
		},
		{
			ID:             "p6",
			Name:           "Super Greens",
			Brand:          "Peak House",
			Category:       "Wellness",
			Description:    "Comprehensive daily greens formula with probiotics and digestive enzymes.",
			Price:          price("44.99"),
			CompareAtPrice: comparePrice("54.99"),
			Image:          "/assets/Protien.jpg",
			Rating:         4.6,
			ReviewCount:    89,
			Badges:         Badges{BadgeSale},
			Variants: []Variant{
				{Size: "30 Servings", Flavor: "Berry Blast", Price: price("44.99"), InStock: true},
			},
			Benefits: StringList{"Immune Support", "Detoxify", "Natural Energy"},
		},
	}

	for i := range products {
		products[i].Position = i
		for j := range products[i].Variants {
			products[i].Variants[j].ProductID = products[i].ID
			products[i].Variants[j].Position = j
		}
	}
	return products
}

// SeedCategories returns a fresh copy of the shop's category tiles, in display order.
func SeedCategories() []Category {
	return []Category{
		{ID: "muscle", Name: "Muscle Building", Icon: "dumbbell", Color: "from-orange-500 to-red-600", Position: 0},
		{ID: "weight-loss", Name: "Weight Loss", Icon: "flame", Color: "from-teal-400 to-emerald-600", Position: 1},
		{ID: "endurance", Name: "Endurance", Icon: "zap", Color: "from-blue-500 to-cyan-400", Position: 2},
		{ID: "health", Name: "General Health", Icon: "heart", Color: "from-green-500 to-teal-600", Position: 3},
	}
}
