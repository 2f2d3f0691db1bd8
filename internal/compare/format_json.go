package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a comparison report
func (jf *JSONFormatter) Format(r *Report) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
