package foodcsv

import (
	"regexp"
	"strings"
)

// Field is a logical column the loader needs
type Field int

const (
	FieldName Field = iota
	FieldCalories
	FieldProtein
	FieldCarbs
)

var fieldNames = map[Field]string{
	FieldName:     "food",
	FieldCalories: "calories",
	FieldProtein:  "protein",
	FieldCarbs:    "carbohydrates",
}

func (f Field) String() string {
	return fieldNames[f]
}

var requiredFields = []Field{FieldName, FieldCalories, FieldProtein, FieldCarbs}

// headerNoiseRegex strips everything but letters and digits from a header
var headerNoiseRegex = regexp.MustCompile(`[^a-z0-9]`)

// columnAliases maps normalized header names to the field they carry.
// "Caloric Value", "calories" and "Energy (kcal)" all land on FieldCalories.
var columnAliases = map[string]Field{
	"food":        FieldName,
	"foodname":    FieldName,
	"name":        FieldName,
	"description": FieldName,

	"caloricvalue": FieldCalories,
	"calories":     FieldCalories,
	"calorie":      FieldCalories,
	"energy":       FieldCalories,
	"energykcal":   FieldCalories,
	"kcal":         FieldCalories,

	"protein":  FieldProtein,
	"proteing": FieldProtein,

	"carbohydrates":  FieldCarbs,
	"carbohydrate":   FieldCarbs,
	"carbohydratesg": FieldCarbs,
	"carbs":          FieldCarbs,
}

// alternateSchema is the positional layout of the extended nutrition table.
// It is applied when the header does not name the required columns.
var alternateSchema = []string{
	"food", "Caloric Value", "Fat", "Carbohydrates", "Sugars", "Protein", "Water",
	"Vitamin A", "Vitamin B1", "Vitamin C", "Vitamin D", "Vitamin E", "Vitamin K",
	"Calcium", "Iron",
}

// normalizeHeader lowercases a header and drops spaces and punctuation
func normalizeHeader(h string) string {
	return headerNoiseRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

// columnMap records the column index of each required field
type columnMap map[Field]int

// resolveColumns maps header cells to fields. The first column claiming a
// field wins. It returns the fields that could not be found.
func resolveColumns(header []string) (columnMap, []Field) {
	columns := columnMap{}
	for i, h := range header {
		field, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, taken := columns[field]; !taken {
			columns[field] = i
		}
	}

	var missing []Field
	for _, f := range requiredFields {
		if _, ok := columns[f]; !ok {
			missing = append(missing, f)
		}
	}
	return columns, missing
}

// alternateColumns resolves the alternate positional schema
func alternateColumns() columnMap {
	columns, _ := resolveColumns(alternateSchema)
	return columns
}
