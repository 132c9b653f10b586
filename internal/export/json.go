package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

type Data struct {
	Run    storage.RunMetadata  `json:"run"`
	Series map[string][]float64 `json:"series"`
	Final  [][2]float64         `json:"final,omitempty"`
}

// RunJSON writes a stored run: its metadata plus the per-tick series.
func RunJSON(w io.Writer, meta storage.RunMetadata, series map[string][]float64) error {
	return encode(w, Data{Run: meta, Series: series})
}

// ResultJSON writes a fresh result, including final particle positions.
func ResultJSON(w io.Writer, meta storage.RunMetadata, result *sim.Result) error {
	meta.Record(result)

	data := Data{
		Run:    meta,
		Series: result.Series,
		Final:  make([][2]float64, len(result.Final)),
	}
	for i, p := range result.Final {
		data.Final[i] = p
	}

	return encode(w, data)
}

func encode(w io.Writer, data Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
