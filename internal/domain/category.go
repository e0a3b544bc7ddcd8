package domain

import "strings"

// Category is a product category from the fixed taxonomy
type Category string

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryHerbs      Category = "Herbs"
	CategoryGrains     Category = "Grains"
	CategoryLegumes    Category = "Legumes"
	CategoryNuts       Category = "Nuts"
	CategorySpices     Category = "Spices"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategorySeafood    Category = "Seafood"
	CategoryBeverages  Category = "Beverages"
	CategorySnacks     Category = "Snacks"
	CategoryBakery     Category = "Bakery"
	CategoryFrozen     Category = "Frozen"
	CategoryCanned     Category = "Canned"
	CategoryOther      Category = "Other"
)

// Categories returns the taxonomy in declaration order. Classification
// tie-breaks resolve to the first category reaching the maximum score,
// so this order is part of the classifier contract.
func Categories() []Category {
	return []Category{
		CategoryFruits,
		CategoryVegetables,
		CategoryHerbs,
		CategoryGrains,
		CategoryLegumes,
		CategoryNuts,
		CategorySpices,
		CategoryDairy,
		CategoryMeat,
		CategorySeafood,
		CategoryBeverages,
		CategorySnacks,
		CategoryBakery,
		CategoryFrozen,
		CategoryCanned,
		CategoryOther,
	}
}

var categoryByLabel = func() map[string]Category {
	m := make(map[string]Category, len(Categories()))
	for _, c := range Categories() {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

// CategoryFromLabel maps a free-text label to a taxonomy entry,
// ignoring case and surrounding whitespace. The second return value
// reports whether the label matched.
func CategoryFromLabel(label string) (Category, bool) {
	c, ok := categoryByLabel[strings.ToLower(strings.TrimSpace(label))]
	return c, ok
}
