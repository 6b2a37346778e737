package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

var tableHeaders = []string{"", "Strike", "Exp Date", "DTE", "PoP %", "Delta", "Ret. %", "Annual % "}

// RenderTable writes the accepted puts as a GitHub style markdown table, followed by a
// summary of their annualized returns and the number of candidates that missed minReturn.
func RenderTable(w io.Writer, result eventmodels.ScreenResult, minReturn float64) error {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader(tableHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, row := range result.Accepted {
		delta := "-"
		if d, ok := row.AbsDelta(); ok {
			delta = fmt.Sprintf("%.2f", d)
		}

		table.Append([]string{
			row.UnderlyingSymbol.String(),
			p.Sprintf("%.2f", row.StrikePrice),
			row.ExpirationDateString(),
			strconv.Itoa(row.DaysToExpiration),
			fmt.Sprintf("%.1f", row.ProbabilityOfProfitPct),
			delta,
			fmt.Sprintf("%.1f", row.PutReturnPct),
			fmt.Sprintf("%.1f", row.AnnualizedReturnPct),
		})
	}

	table.Render()

	if summary, ok := annualReturnSummary(result); ok {
		display.WriteString("\n")
		display.WriteString(summary)
		display.WriteString("\n")
	}

	display.WriteString(fmt.Sprintf("\nOptions found below annual return threshold of %s%%: %d\n", strconv.FormatFloat(minReturn, 'f', -1, 64), result.BelowThresholdCount))

	if _, err := io.WriteString(w, display.String()); err != nil {
		return fmt.Errorf("RenderTable: failed to write table: %w", err)
	}

	return nil
}

func annualReturnSummary(result eventmodels.ScreenResult) (string, bool) {
	returns := stats.Float64Data(result.AnnualizedReturns())
	if returns.Len() == 0 {
		return "", false
	}

	mean, err := returns.Mean()
	if err != nil {
		return "", false
	}

	median, err := returns.Median()
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("Annual return across %d puts: mean %.1f%%, median %.1f%%", returns.Len(), mean, median), true
}
