package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"car-price-scraper/models"
	"car-price-scraper/services"
	"car-price-scraper/utils"
)

const emptyFilterMessage = "No vehicle models match the current filter criteria. Please adjust your filters."

// Chart geometry in SVG user units.
const (
	labelWidth  = 140
	plotWidth   = 560
	rowHeight   = 28
	barHeight   = 18
	chartMargin = 10
)

type brandOption struct {
	Name     string
	Selected bool
}

type bar struct {
	Label string
	Value string
	Y     int
	Width float64
}

type box struct {
	Label                        string
	Y, Mid                       int
	Min, Q1, Median, Q3, Max     float64
	MinText, MedianText, MaxText string
}

type listingRow struct {
	Brand, Year, Model, Price string
}

type pageData struct {
	Title  string
	NoData string
	Empty  string

	Brands             []brandOption
	YearMin, YearMax   int
	PriceMin, PriceMax string
	Descending         bool

	Stats       []models.BrandStats
	Bars        []bar
	Boxes       []box
	ChartHeight int
	BoxHeight   int
	Rows        []listingRow
}

// fill lays out the view for the template. Currency formatting happens here
// and nowhere earlier.
func (p *pageData) fill(table *services.Table, v models.View) {
	selected := make(map[string]bool, len(v.Spec.Brands))
	for _, b := range v.Spec.Brands {
		selected[models.DisplayName(b)] = true
	}
	for _, b := range table.Brands() {
		p.Brands = append(p.Brands, brandOption{Name: b, Selected: selected[b]})
	}
	p.YearMin, p.YearMax = v.Spec.Years.Min, v.Spec.Years.Max
	p.PriceMin = fmt.Sprintf("%.0f", v.Spec.Prices.Min)
	p.PriceMax = fmt.Sprintf("%.0f", v.Spec.Prices.Max)
	p.Descending = v.Spec.Sort == models.SortDescending

	if v.Empty() {
		p.Empty = emptyFilterMessage
		return
	}

	p.Stats = v.Stats
	p.Bars = layoutBars(v.ByMean)
	p.ChartHeight = len(p.Bars)*rowHeight + 2*chartMargin
	p.Boxes = layoutBoxes(v.Boxes)
	p.BoxHeight = len(p.Boxes)*rowHeight + 2*chartMargin

	p.Rows = make([]listingRow, 0, len(v.Rows))
	for _, l := range v.Rows {
		p.Rows = append(p.Rows, listingRow{
			Brand: l.Brand,
			Year:  l.Year.String(),
			Model: l.Model,
			Price: services.FormatPrice(l.Price),
		})
	}
}

func layoutBars(byMean []models.BrandStats) []bar {
	if len(byMean) == 0 {
		return nil
	}
	top := byMean[0].Mean
	bars := make([]bar, 0, len(byMean))
	for i, s := range byMean {
		w := 0.0
		if top > 0 {
			w = s.Mean / top * plotWidth
		}
		bars = append(bars, bar{
			Label: s.Brand,
			Value: services.FormatCurrency(s.Mean),
			Y:     chartMargin + i*rowHeight,
			Width: w,
		})
	}
	return bars
}

func layoutBoxes(stats []models.BoxStats) []box {
	if len(stats) == 0 {
		return nil
	}
	lo, hi := stats[0].Min, stats[0].Max
	for _, s := range stats {
		lo = min(lo, s.Min)
		hi = max(hi, s.Max)
	}
	scale := func(v float64) float64 {
		if hi == lo {
			return labelWidth + plotWidth/2
		}
		return labelWidth + (v-lo)/(hi-lo)*plotWidth
	}

	boxes := make([]box, 0, len(stats))
	for i, s := range stats {
		y := chartMargin + i*rowHeight
		boxes = append(boxes, box{
			Label:      s.Brand,
			Y:          y,
			Mid:        y + barHeight/2,
			Min:        scale(s.Min),
			Q1:         scale(s.Q1),
			Median:     scale(s.Median),
			Q3:         scale(s.Q3),
			Max:        scale(s.Max),
			MinText:    services.FormatCurrency(s.Min),
			MedianText: services.FormatCurrency(s.Median),
			MaxText:    services.FormatCurrency(s.Max),
		})
	}
	return boxes
}

var pageFuncs = template.FuncMap{
	"currency": services.FormatCurrency,
	"sub":      func(a, b float64) float64 { return a - b },
	"plus":     func(a, b int) int { return a + b },
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(pageHTML))

func writePage(w http.ResponseWriter, status int, data pageData, logger *utils.Logger) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logger.Error("[dashboard] Render page: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; color: #222; }
aside { width: 260px; padding: 1rem; background: #f4f5f7; min-height: 100vh; }
main { flex: 1; padding: 1rem 2rem; }
label { display: block; margin-top: .8rem; font-weight: 600; }
select, input { width: 100%; box-sizing: border-box; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border-bottom: 1px solid #ddd; padding: .3rem .8rem; text-align: left; }
td.num { text-align: right; }
.notice { padding: 1rem; background: #fff4e5; border-left: 4px solid #f0a030; }
svg text { font-size: 12px; }
</style>
</head>
<body>
<aside>
<h2>Filters</h2>
{{if not .NoData}}
<form method="get" action="/">
<label for="brand">Brands</label>
<select id="brand" name="brand" multiple size="10">
{{range .Brands}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
<label>Year range</label>
<input type="number" name="year_min" value="{{.YearMin}}">
<input type="number" name="year_max" value="{{.YearMax}}">
<label>Price range ($)</label>
<input type="number" name="price_min" value="{{.PriceMin}}">
<input type="number" name="price_max" value="{{.PriceMax}}">
<label for="sort">Sort by price</label>
<select id="sort" name="sort">
<option value="asc"{{if not .Descending}} selected{{end}}>Ascending</option>
<option value="desc"{{if .Descending}} selected{{end}}>Descending</option>
</select>
<p><button type="submit">Apply</button></p>
</form>
{{end}}
</aside>
<main>
<h1>{{.Title}}</h1>
{{if .NoData}}
<div class="notice"><strong>No data available.</strong> Run the scraper to produce complete.json. ({{.NoData}})</div>
{{else if .Empty}}
<div class="notice">{{.Empty}}</div>
{{else}}
<h2>Automotive Brand Price Analysis</h2>
<table>
<tr><th>Brand</th><th>Model Count</th><th>Minimum Price</th><th>Maximum Price</th><th>Average Price</th></tr>
{{range .Stats}}<tr><td>{{.Brand}}</td><td class="num">{{.Count}}</td><td class="num">{{currency .Min}}</td><td class="num">{{currency .Max}}</td><td class="num">{{currency .Mean}}</td></tr>
{{end}}</table>

<h2>Average Price Comparison</h2>
<svg width="760" height="{{.ChartHeight}}" role="img" aria-label="Average price by brand">
{{range .Bars}}<text x="0" y="{{plus .Y 13}}">{{.Label}}</text>
<rect x="140" y="{{.Y}}" width="{{printf "%.1f" .Width}}" height="18" fill="#3b6ea5"><title>{{.Label}}: {{.Value}}</title></rect>
{{end}}</svg>

<h2>Price Distribution</h2>
<svg width="760" height="{{.BoxHeight}}" role="img" aria-label="Price distribution by brand">
{{range .Boxes}}<text x="0" y="{{plus .Y 13}}">{{.Label}}</text>
<line x1="{{printf "%.1f" .Min}}" x2="{{printf "%.1f" .Max}}" y1="{{.Mid}}" y2="{{.Mid}}" stroke="#555"/>
<rect x="{{printf "%.1f" .Q1}}" y="{{.Y}}" width="{{printf "%.1f" (sub .Q3 .Q1)}}" height="18" fill="#cfe0f3" stroke="#3b6ea5"><title>{{.Label}}: {{.MinText}} / {{.MedianText}} / {{.MaxText}}</title></rect>
<line x1="{{printf "%.1f" .Median}}" x2="{{printf "%.1f" .Median}}" y1="{{.Y}}" y2="{{plus .Y 18}}" stroke="#1d3f66" stroke-width="2"/>
{{end}}</svg>

<h2>Filtered Vehicle Models</h2>
<table>
<tr><th>Brand</th><th>Year</th><th>Model</th><th>Price</th></tr>
{{range .Rows}}<tr><td>{{.Brand}}</td><td>{{.Year}}</td><td>{{.Model}}</td><td class="num">{{.Price}}</td></tr>
{{end}}</table>
{{end}}
</main>
</body>
</html>
`
