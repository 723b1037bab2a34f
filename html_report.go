package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Chart geometry. The SVG uses fixed pixel coordinates so the hover layer
// can map mouse offsets straight onto the income grid.
const (
	chartWidth   = 1200
	chartHeight  = 800
	chartLeft    = 80.0
	chartRight   = 1120.0
	chartTop     = 30.0
	chartBottom  = 740.0
	percentScale = 1.0 // secondary axis runs 0..100%
)

// curveChartSeries describes one plotted line.
type curveChartSeries struct {
	ID      string
	Label   string
	Color   string
	Percent bool // plotted against the secondary axis, formatted as a rate
	Width   int
	Value   func(CurvePoint) float64
}

func curveChartSeriesList() []curveChartSeries {
	// Category10 ordering, matching the console table rows.
	return []curveChartSeries{
		{ID: "net", Label: "Net income", Color: "#1f77b4", Width: 4,
			Value: func(p CurvePoint) float64 { return p.NetIncome }},
		{ID: "bracket", Label: "Bracket tax", Color: "#ff7f0e", Width: 2,
			Value: func(p CurvePoint) float64 { return p.BracketTax }},
		{ID: "general", Label: "General tax credit", Color: "#2ca02c", Width: 2,
			Value: func(p CurvePoint) float64 { return p.GeneralCredit }},
		{ID: "labour", Label: "Labour tax credit", Color: "#d62728", Width: 2,
			Value: func(p CurvePoint) float64 { return p.LabourCredit }},
		{ID: "tax", Label: "Total tax", Color: "#9467bd", Width: 2,
			Value: func(p CurvePoint) float64 { return p.TotalTax }},
		{ID: "effective", Label: "Effective rate", Color: "#8c564b", Width: 2, Percent: true,
			Value: func(p CurvePoint) float64 { return p.EffectiveRate }},
		{ID: "marginal", Label: "Marginal rate", Color: "#e377c2", Width: 2, Percent: true,
			Value: func(p CurvePoint) float64 { return p.MarginalRate }},
	}
}

// GenerateCurveReport writes a self-contained static HTML chart of all
// income/tax curves to filename. Primary axis is currency, secondary axis
// percentage (0-100%); hovering shows every series value at that income.
func GenerateCurveReport(points []CurvePoint, title, filename string) error {
	if len(points) < 2 {
		return fmt.Errorf("curve report needs at least 2 points, got %d", len(points))
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	series := curveChartSeriesList()
	xMax := points[len(points)-1].GrossIncome

	// Currency axis tops out at the largest amount-series value.
	yMax := 0.0
	for _, s := range series {
		if s.Percent {
			continue
		}
		if m := lo.Max(curveSeries(points, s.Value)); m > yMax {
			yMax = m
		}
	}
	if yMax <= 0 {
		yMax = 1
	}

	xScale := func(v float64) float64 {
		return chartLeft + v/xMax*(chartRight-chartLeft)
	}
	yScale := func(v float64) float64 {
		return chartBottom - v/yMax*(chartBottom-chartTop)
	}
	y2Scale := func(v float64) float64 {
		return chartBottom - v/percentScale*(chartBottom-chartTop)
	}

	// Write HTML header
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        :root {
            --primary: #2563eb;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1280px; margin: 0 auto; }
        h1 {
            font-size: 1.75rem;
            margin-bottom: 0.5rem;
            color: var(--primary);
        }
        .subtitle {
            color: var(--text-muted);
            margin-bottom: 1.5rem;
        }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .chart-wrap { position: relative; }
        .legend {
            display: flex;
            flex-wrap: wrap;
            gap: 0.5rem 1.25rem;
            margin-bottom: 0.75rem;
            font-size: 0.875rem;
            user-select: none;
        }
        .legend-item { cursor: pointer; white-space: nowrap; }
        .legend-item.off { opacity: 0.35; text-decoration: line-through; }
        .legend-swatch {
            display: inline-block;
            width: 1.6em;
            height: 0.35em;
            border-radius: 2px;
            margin-right: 0.4em;
            vertical-align: middle;
        }
        .axis-label { fill: var(--text-muted); font-size: 12px; }
        .axis-title { fill: var(--text); font-size: 13px; }
        .gridline { stroke: var(--border); stroke-width: 1; }
        .axis-line { stroke: var(--text-muted); stroke-width: 1; }
        #tooltip {
            position: absolute;
            display: none;
            background: rgba(255,255,255,0.96);
            border: 1px solid var(--border);
            border-radius: 6px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.15);
            padding: 0.5rem 0.75rem;
            font-size: 0.8rem;
            pointer-events: none;
            white-space: nowrap;
            z-index: 10;
        }
        #tooltip table td { padding: 0 0.25rem; }
        #tooltip table td:last-child { text-align: right; font-variant-numeric: tabular-nums; }
        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.75rem;
            margin-top: 2rem;
            padding-top: 1rem;
            border-top: 1px solid var(--border);
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p class="subtitle">Gross income from %s to %s, %d samples</p>
        <div class="card">
`, title, title, FormatEuro(points[0].GrossIncome), FormatEuro(xMax), len(points))

	// Legend
	f.WriteString("            <div class=\"legend\">\n")
	for _, s := range series {
		axis := ""
		if s.Percent {
			axis = " (right axis)"
		}
		fmt.Fprintf(f, "                <span class=\"legend-item\" id=\"legend-%s\" onclick=\"toggleSeries('%s')\"><span class=\"legend-swatch\" style=\"background:%s\"></span>%s%s</span>\n",
			s.ID, s.ID, s.Color, s.Label, axis)
	}
	f.WriteString("            </div>\n")

	// SVG chart
	fmt.Fprintf(f, "            <div class=\"chart-wrap\">\n")
	fmt.Fprintf(f, "            <svg id=\"chart\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		chartWidth, chartHeight, chartWidth, chartHeight)

	// Horizontal gridlines and currency axis labels (left)
	const yTicks = 6
	for i := 0; i <= yTicks; i++ {
		v := yMax * float64(i) / yTicks
		y := yScale(v)
		fmt.Fprintf(f, "                <line class=\"gridline\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			chartLeft, y, chartRight, y)
		fmt.Fprintf(f, "                <text class=\"axis-label\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"end\">%s</text>\n",
			chartLeft-8, y+4, formatAxisEuro(v))
	}

	// Percentage axis labels (right)
	for i := 0; i <= 5; i++ {
		v := percentScale * float64(i) / 5
		y := y2Scale(v)
		fmt.Fprintf(f, "                <text class=\"axis-label\" x=\"%.1f\" y=\"%.1f\">%.0f%%</text>\n",
			chartRight+8, y+4, v*100)
	}

	// X axis ticks and labels
	const xTicks = 6
	for i := 0; i <= xTicks; i++ {
		v := xMax * float64(i) / xTicks
		x := xScale(v)
		fmt.Fprintf(f, "                <line class=\"axis-line\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			x, chartBottom, x, chartBottom+5)
		fmt.Fprintf(f, "                <text class=\"axis-label\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
			x, chartBottom+20, formatAxisEuro(v))
	}

	// Axis frame and titles
	fmt.Fprintf(f, "                <line class=\"axis-line\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
		chartLeft, chartTop, chartLeft, chartBottom)
	fmt.Fprintf(f, "                <line class=\"axis-line\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
		chartRight, chartTop, chartRight, chartBottom)
	fmt.Fprintf(f, "                <line class=\"axis-line\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
		chartLeft, chartBottom, chartRight, chartBottom)
	fmt.Fprintf(f, "                <text class=\"axis-title\" x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">Gross income (€)</text>\n",
		(chartLeft+chartRight)/2, chartBottom+45)

	// Series polylines
	for _, s := range series {
		scale := yScale
		if s.Percent {
			scale = y2Scale
		}
		var b strings.Builder
		for _, p := range points {
			fmt.Fprintf(&b, "%.1f,%.1f ", xScale(p.GrossIncome), scale(s.Value(p)))
		}
		fmt.Fprintf(f, "                <polyline id=\"series-%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%d\" points=\"%s\"/>\n",
			s.ID, s.Color, s.Width, strings.TrimSpace(b.String()))
	}

	// Crosshair and hover overlay
	fmt.Fprintf(f, "                <line id=\"crosshair\" x1=\"0\" y1=\"%.1f\" x2=\"0\" y2=\"%.1f\" stroke=\"#64748b\" stroke-opacity=\"0.5\" visibility=\"hidden\"/>\n",
		chartTop, chartBottom)
	fmt.Fprintf(f, "                <rect id=\"overlay\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"none\" pointer-events=\"all\"/>\n",
		chartLeft, chartTop, chartRight-chartLeft, chartBottom-chartTop)

	f.WriteString("            </svg>\n")
	f.WriteString("            <div id=\"tooltip\"></div>\n")
	f.WriteString("            </div>\n")
	f.WriteString("        </div>\n")

	// Embedded data for the hover layer, one array per series in grid order.
	data := map[string][]float64{
		"gross": curveSeries(points, func(p CurvePoint) float64 { return p.GrossIncome }),
	}
	for _, s := range series {
		data[s.ID] = curveSeries(points, s.Value)
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	type jsSeries struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Color   string `json:"color"`
		Percent bool   `json:"percent"`
	}
	meta := lo.Map(series, func(s curveChartSeries, _ int) jsSeries {
		return jsSeries{ID: s.ID, Label: s.Label, Color: s.Color, Percent: s.Percent}
	})
	encodedMeta, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	fmt.Fprintf(f, `    <script>
        const data = %s;
        const seriesMeta = %s;
        const plotLeft = %.1f, plotRight = %.1f;
        const n = data.gross.length;

        function toggleSeries(id) {
            const line = document.getElementById('series-' + id);
            const item = document.getElementById('legend-' + id);
            const off = line.getAttribute('visibility') === 'hidden';
            line.setAttribute('visibility', off ? 'visible' : 'hidden');
            item.classList.toggle('off', !off);
        }

        function formatEuro(v) {
            return '€ ' + Math.round(v).toLocaleString('en-GB');
        }

        function formatPercent(v) {
            return (v * 100).toFixed(2) + '%%';
        }

        const svg = document.getElementById('chart');
        const overlay = document.getElementById('overlay');
        const crosshair = document.getElementById('crosshair');
        const tooltip = document.getElementById('tooltip');

        overlay.addEventListener('mousemove', function (evt) {
            const rect = svg.getBoundingClientRect();
            const x = (evt.clientX - rect.left) * (svg.viewBox.baseVal.width / rect.width);
            let idx = Math.round((x - plotLeft) / (plotRight - plotLeft) * (n - 1));
            idx = Math.max(0, Math.min(n - 1, idx));

            const snapX = plotLeft + idx / (n - 1) * (plotRight - plotLeft);
            crosshair.setAttribute('x1', snapX);
            crosshair.setAttribute('x2', snapX);
            crosshair.setAttribute('visibility', 'visible');

            let html = '<table><tr><td><b>Gross income</b></td><td><b>' +
                formatEuro(data.gross[idx]) + '</b></td></tr>';
            for (const s of seriesMeta) {
                const v = data[s.id][idx];
                const text = s.percent ? formatPercent(v) : formatEuro(v);
                html += '<tr><td style="color:' + s.color + '">' + s.label +
                    '</td><td>' + text + '</td></tr>';
            }
            html += '</table>';
            tooltip.innerHTML = html;
            tooltip.style.display = 'block';

            const wrapRect = svg.parentElement.getBoundingClientRect();
            let left = evt.clientX - wrapRect.left + 16;
            if (left + tooltip.offsetWidth > wrapRect.width) {
                left = evt.clientX - wrapRect.left - tooltip.offsetWidth - 16;
            }
            tooltip.style.left = left + 'px';
            tooltip.style.top = (evt.clientY - wrapRect.top + 16) + 'px';
        });

        overlay.addEventListener('mouseleave', function () {
            crosshair.setAttribute('visibility', 'hidden');
            tooltip.style.display = 'none';
        });
    </script>
`, encoded, encodedMeta, chartLeft, chartRight)

	// Footer
	fmt.Fprintf(f, `    <div class="footer">
        Generated %s
    </div>
    </div>
</body>
</html>
`, time.Now().Format("2006-01-02 15:04"))

	return nil
}
