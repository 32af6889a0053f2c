package util

// aliasCorrections maps legacy or malformed neighbourhood spellings found in
// police extracts to their Neighbourhood158 form.
var aliasCorrections = map[string]string{
	"Wexford/Maryvale (119)":               "Wexford-Maryvale (119)",
	"St.Andrew-Windfields (40)":            "St. Andrew-Windfields (40)",
	"Cabbagetown-South St.James Town (71)": "Cabbagetown-South St. James Town (71)",
	"Yonge-St.Clair (97)":                  "Yonge-St. Clair (97)",
	"Oakdale-Beverley Heights (154)":       "Oakdale–Beverly Heights (154)",
}

// CorrectAlias returns the canonical spelling for a known alias.
func CorrectAlias(name string) (string, bool) {
	v, ok := aliasCorrections[name]
	return v, ok
}
