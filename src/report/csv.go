package report

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

// ExportToCsv writes the accepted puts to <outDir>/<prefix>_<timestamp>.csv and returns the
// file path.
func ExportToCsv(outDir string, result eventmodels.ScreenResult, outFilePrefix string) (string, error) {
	now := time.Now()
	outFilePath := path.Join(outDir, fmt.Sprintf("%s_%s.csv", outFilePrefix, now.Format("2006-01-02_15-04-05")))

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to create directory: %w", err)
	}

	file, err := os.Create(outFilePath)
	if err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to create file: %w", err)
	}
	defer file.Close()

	rows := make([]*eventmodels.ScreenedResultCSV, 0, len(result.Accepted))
	for _, r := range result.Accepted {
		rows = append(rows, r.ToCSV())
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("ExportToCsv: failed to write to file: %w", err)
	}

	return outFilePath, nil
}
