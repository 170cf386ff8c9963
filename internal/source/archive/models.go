package archive

import (
	"encoding/json"
	"strings"
)

// APIResponse represents the advancedsearch.php JSON output.
type APIResponse struct {
	Response struct {
		NumFound int   `json:"numFound"`
		Docs     []Doc `json:"docs"`
	} `json:"response"`
}

type Doc struct {
	Identifier string     `json:"identifier"`
	Title      LooseValue `json:"title"`
	Date       LooseValue `json:"date"`
	Year       LooseValue `json:"year"`
}

// LooseValue accepts a string, a number or an array of either, keeping the first value as text.
// Archive metadata fields are free-form and change shape between items.
type LooseValue string

func (v *LooseValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = LooseValue(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = LooseValue(n.String())
		return nil
	}

	var list []LooseValue
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*v = list[0]
		}
		return nil
	}

	*v = ""
	return nil
}
