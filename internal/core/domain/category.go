package domain

import "strings"

const lowestPriority = 11

// categoryPriority ordena as categorias da mais grave para a menos grave.
var categoryPriority = map[string]int{
	"violent-crime":         1,
	"robbery":               2,
	"burglary":              3,
	"theft-from-the-person": 4,
	"vehicle-crime":         5,
	"other-theft":           6,
	"criminal-damage-arson": 7,
	"drugs":                 8,
	"public-order":          9,
	"anti-social-behaviour": 10,
}

var categoryColors = map[string]string{
	"violent-crime":         "#dc2626",
	"burglary":              "#ea580c",
	"robbery":               "#d97706",
	"theft-from-the-person": "#ca8a04",
	"vehicle-crime":         "#65a30d",
	"other-theft":           "#059669",
	"criminal-damage-arson": "#0891b2",
	"drugs":                 "#7c3aed",
	"public-order":          "#c026d3",
	"anti-social-behaviour": "#e11d48",
}

const defaultCategoryColor = "#6b7280"

// CategoryPriority devolve 1 para a categoria mais grave; categorias
// desconhecidas empatam na menor prioridade.
func CategoryPriority(category string) int {
	if p, ok := categoryPriority[strings.ToLower(category)]; ok {
		return p
	}
	return lowestPriority
}

func CategoryColor(category string) string {
	if c, ok := categoryColors[strings.ToLower(category)]; ok {
		return c
	}
	return defaultCategoryColor
}

// CategoryLabel transforma "theft-from-the-person" em "Theft From The Person".
func CategoryLabel(category string) string {
	words := strings.Fields(strings.ReplaceAll(category, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
