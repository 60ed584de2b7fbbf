package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"car-price-scraper/models"
)

const barWidth = 30

// ReportPrinter renders a query view as terminal tables.
type ReportPrinter struct {
	out       io.Writer
	maxListed int
}

// NewReportPrinter writes to out and lists at most maxListed models
// (0 lists all of them).
func NewReportPrinter(out io.Writer, maxListed int) *ReportPrinter {
	return &ReportPrinter{out: out, maxListed: maxListed}
}

// Print renders the brand summary, the mean price ranking and the listings.
func (p *ReportPrinter) Print(v models.View) {
	sep := strings.Repeat("═", 60)
	fmt.Fprintf(p.out, "\n%s\n  AUTOMOTIVE MARKET PRICE ANALYTICS\n%s\n\n", sep, sep)

	brands := "all"
	if len(v.Spec.Brands) > 0 {
		brands = strings.Join(v.Spec.Brands, ", ")
	}
	fmt.Fprintf(p.out, "  Brands : %s\n", brands)
	fmt.Fprintf(p.out, "  Years  : %d - %d\n", v.Spec.Years.Min, v.Spec.Years.Max)
	fmt.Fprintf(p.out, "  Prices : %s - %s\n", FormatCurrency(v.Spec.Prices.Min), FormatCurrency(v.Spec.Prices.Max))
	fmt.Fprintf(p.out, "  Sort   : price %s\n\n", v.Spec.Sort)

	if v.Empty() {
		fmt.Fprintln(p.out, "  No vehicle models match the current filter criteria. Adjust the filters.")
		fmt.Fprintln(p.out)
		return
	}

	p.printStats(v.Stats)
	p.printRanking(v.ByMean)
	p.printListings(v.Rows)
}

func (p *ReportPrinter) printStats(stats []models.BrandStats) {
	t := p.newTable("Automotive Brand Price Analysis")
	t.AppendHeader(table.Row{"Brand", "Model Count", "Minimum Price", "Maximum Price", "Average Price"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Brand, s.Count, FormatCurrency(s.Min), FormatCurrency(s.Max), FormatCurrency(s.Mean)})
	}
	t.SetColumnConfigs(rightAligned(2, 3, 4, 5))
	t.Render()
	fmt.Fprintln(p.out)
}

func (p *ReportPrinter) printRanking(byMean []models.BrandStats) {
	if len(byMean) == 0 {
		return
	}
	top := byMean[0].Mean
	t := p.newTable("Average Price Comparison")
	t.AppendHeader(table.Row{"Brand", "Average Price", ""})
	for _, s := range byMean {
		n := 1
		if top > 0 {
			n = max(1, int(s.Mean/top*barWidth+0.5))
		}
		t.AppendRow(table.Row{s.Brand, FormatCurrency(s.Mean), strings.Repeat("█", n)})
	}
	t.SetColumnConfigs(rightAligned(2))
	t.Render()
	fmt.Fprintln(p.out)
}

func (p *ReportPrinter) printListings(rows []models.Listing) {
	t := p.newTable("Filtered Vehicle Models")
	t.AppendHeader(table.Row{"Brand", "Year", "Model", "Price"})
	shown := rows
	if p.maxListed > 0 && len(shown) > p.maxListed {
		shown = shown[:p.maxListed]
	}
	for _, r := range shown {
		t.AppendRow(table.Row{r.Brand, r.Year.String(), r.Model, FormatPrice(r.Price)})
	}
	if len(shown) < len(rows) {
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d more not shown", len(rows)-len(shown)), ""})
	}
	t.SetColumnConfigs(rightAligned(4))
	t.Render()
	fmt.Fprintln(p.out)
}

func (p *ReportPrinter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle(title)
	return t
}

func rightAligned(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: c, Align: text.AlignRight})
	}
	return cfgs
}
