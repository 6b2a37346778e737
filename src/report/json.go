package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

func RenderJSON(w io.Writer, result eventmodels.ScreenResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("RenderJSON: failed to encode result: %w", err)
	}

	return nil
}
