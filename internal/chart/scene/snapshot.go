package scene

import (
	"github.com/life2you_mini/tradedash/internal/chart"
)

// Document 渲染结果，可以直接序列化为JSON
type Document struct {
	Panes []PaneDoc `json:"panes"`
}

// PaneDoc 面板
type PaneDoc struct {
	Mount        string              `json:"mount"`
	Width        int                 `json:"width"`
	Height       int                 `json:"height"`
	VisibleRange *chart.LogicalRange `json:"visible_range,omitempty"`
	Series       []SeriesDoc         `json:"series"`
}

// SeriesDoc 序列
type SeriesDoc struct {
	Kind       string         `json:"kind"`
	Name       string         `json:"name,omitempty"`
	Color      string         `json:"color,omitempty"`
	Dashed     bool           `json:"dashed,omitempty"`
	Len        int            `json:"len"`
	Last       string         `json:"last,omitempty"`
	Points     []PointDoc     `json:"points,omitempty"`
	PriceLines []PriceLineDoc `json:"price_lines,omitempty"`
}

// PointDoc 折线点，空白点的Value为nil
type PointDoc struct {
	Time  int64    `json:"time"`
	Value *float64 `json:"value"`
}

// PriceLineDoc 价格线，Label为坐标轴上显示的文本
type PriceLineDoc struct {
	Title string  `json:"title,omitempty"`
	Price float64 `json:"price"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// Snapshot 导出所有存活面板
func (r *Renderer) Snapshot() Document {
	doc := Document{Panes: []PaneDoc{}}
	for _, p := range r.livePanes() {
		doc.Panes = append(doc.Panes, p.snapshot())
	}
	return doc
}

func (p *Pane) snapshot() PaneDoc {
	doc := PaneDoc{
		Mount:  p.mount,
		Width:  p.Width(),
		Height: p.opts.Height,
	}
	if r, ok := p.timeScale.VisibleRange(); ok {
		doc.VisibleRange = &r
	}

	for _, s := range p.Series() {
		sd := SeriesDoc{Kind: s.kind, Len: s.Len()}
		if s.kind == "candles" {
			s.mu.Lock()
			if n := len(s.candles); n > 0 {
				sd.Last = p.Format(s.candles[n-1].Close)
			}
			s.mu.Unlock()
		} else {
			sd.Name = s.lineOpts.Name
			sd.Color = s.lineOpts.Color
			sd.Dashed = s.lineOpts.Style == chart.Dashed
			for _, pt := range s.Points() {
				pd := PointDoc{Time: pt.Time}
				if !pt.Gap() {
					v := pt.Value
					pd.Value = &v
				}
				sd.Points = append(sd.Points, pd)
			}
		}

		for _, l := range s.PriceLines() {
			ld := PriceLineDoc{Title: l.opts.Title, Price: l.opts.Price, Color: l.opts.Color}
			if l.opts.AxisLabel {
				ld.Label = p.Format(l.opts.Price)
			}
			sd.PriceLines = append(sd.PriceLines, ld)
		}
		doc.Series = append(doc.Series, sd)
	}
	return doc
}
