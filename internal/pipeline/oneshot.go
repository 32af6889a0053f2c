package pipeline

import (
	"fmt"
	"os"

	"hatecrimes/internal"
)

func ExtractRecordsFromInput(inputType string, input string) ([]internal.RawRecord, error) {
	switch inputType {
	case "xlsx", "json":
	default:
		return nil, fmt.Errorf("unsupported input type: %s", inputType)
	}

	blob, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if inputType == "xlsx" {
		return parseXLSX(blob)
	}
	return parseJSON(blob)
}
