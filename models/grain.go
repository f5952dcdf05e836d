package models

import (
	"strings"
	"time"

	"graintrade/utils"
)

// Fixed vocabularies for grain listings. Values are normalized on write.
var (
	GrainTypes = []string{
		"Wheat", "Rice", "Corn", "Barley", "Oats", "Rye",
		"Sorghum", "Millet", "Oil", "Sugar", "Ghee",
	}
	GrainGrades   = []string{"Grade A", "Grade B", "Grade C", "Ungraded"}
	GrainStatuses = []string{"Available", "Reserved", "Sold", "In Transit"}
)

type Review struct {
	UserID    string    `json:"userId" bson:"userId"`
	Rating    int       `json:"rating" bson:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Grain struct {
	GrainID   string    `json:"grainId" bson:"grainid"`
	Name      string    `json:"name" bson:"name"`
	Type      string    `json:"type" bson:"type"`
	Images    []string  `json:"image" bson:"image"` // 1-4 hosted URLs
	Quantity  int       `json:"quantity" bson:"quantity"`
	Unit      string    `json:"unit" bson:"unit"`
	Grade     string    `json:"grade" bson:"grade"`
	Price     float64   `json:"price" bson:"price"`
	Supplier  string    `json:"supplier,omitempty" bson:"supplier,omitempty"`
	Status    string    `json:"status" bson:"status"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Reviews   []Review  `json:"reviews,omitempty" bson:"reviews,omitempty"`
	Rating    float64   `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Capitalize normalizes a vocabulary value to "Xxxx" form.
func Capitalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}

// NormalizeUnit lowercases the unit string ("KG" -> "kg").
func NormalizeUnit(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizeGrade maps shorthand grades ("A", "b") onto the canonical
// "Grade X" form; anything unrecognized falls back to "Ungraded".
func NormalizeGrade(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "A", "GRADE A":
		return "Grade A"
	case "B", "GRADE B":
		return "Grade B"
	case "C", "GRADE C":
		return "Grade C"
	default:
		return "Ungraded"
	}
}

// NormalizeType capitalizes and validates against the type vocabulary.
// Returns "" for values outside the vocabulary.
func NormalizeType(v string) string {
	t := Capitalize(v)
	if utils.Contains(GrainTypes, t) {
		return t
	}
	return ""
}

// NormalizeStatus returns the canonical status, defaulting to "Available".
func NormalizeStatus(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Available"
	}
	// "in transit" needs per-word capitalization
	words := strings.Fields(strings.ToLower(v))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	s := strings.Join(words, " ")
	if utils.Contains(GrainStatuses, s) {
		return s
	}
	return "Available"
}

// AverageRating recomputes the derived rating from the review list.
func (g *Grain) AverageRating() float64 {
	if len(g.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range g.Reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(g.Reviews))
}
