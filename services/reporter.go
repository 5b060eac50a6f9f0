package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"house-insights/models"
)

// Printer renders the overview report on a terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Print writes the zipcode summary and the descriptive statistics of r.
func (p *Printer) Print(source string, sales int, r *models.OverviewReport) {
	sep := strings.Repeat("═", 78)
	thin := strings.Repeat("─", 78)
	w := p.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  HOUSE SALES INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Source         : %s\n", source)
	fmt.Fprintf(w, "  Sales loaded   : \033[1m%s\033[0m\n", humanize.Comma(int64(sales)))
	fmt.Fprintf(w, "  Rows selected  : \033[1m%s\033[0m\n", humanize.Comma(int64(len(r.Data.Rows))))
	fmt.Fprintf(w, "  Zipcodes       : \033[1m%d\033[0m\n", len(r.Summary))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Average Values per Zipcode\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Summary) == 0 {
		fmt.Fprintf(w, "  No sales selected\n")
	} else {
		fmt.Fprintf(w, "  \033[1m%-8s %12s %16s %14s %14s\033[0m\n", "Zipcode", "Total Houses", "Price", "Sqft Living", "Price/M2")
		for _, row := range r.Summary {
			fmt.Fprintf(w, "  %-8s %12s %16s %14s %14s\n",
				row.Zipcode,
				humanize.Comma(int64(row.TotalHouses)),
				money(float64(row.Price)),
				humanFloat(float64(row.SqftLiving)),
				humanFloat(float64(row.PricePerArea)))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Descriptive Analysis\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Stats) == 0 {
		fmt.Fprintf(w, "  No numeric data\n")
	} else {
		fmt.Fprintf(w, "  \033[1m%-16s %14s %14s %14s %14s %14s\033[0m\n", "Attributes", "Max", "Min", "Mean", "Median", "Std")
		for _, row := range r.Stats {
			fmt.Fprintf(w, "  %-16s %14s %14s %14s %14s %14s\n",
				truncate(row.Attribute, 16),
				humanFloat(float64(row.Max)),
				humanFloat(float64(row.Min)),
				humanFloat(float64(row.Mean)),
				humanFloat(float64(row.Median)),
				humanFloat(float64(row.Std)))
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatNumber(v)
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

func humanFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatNumber(v)
	}
	return humanize.CommafWithDigits(v, 2)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
