package bank

// documentSchema describes a bank document. A bare question array is wrapped
// as {"questions": [...]} before validation.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":        "string",
			"description": "Semantic version of the bank format, e.g. v1.2.0",
		},
		"title": map[string]any{
			"type": "string",
		},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"subject": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"year": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"week": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": MaxWeek,
		},
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items": map[string]any{
				"type": "string",
			},
		},
		"correct_answer": map[string]any{
			"type": "string",
		},
	},
	"required": []any{"subject", "year", "week", "question", "options", "correct_answer"},
}
