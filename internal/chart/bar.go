package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"sanggwon/internal/model"
)

// barColor 막대 색상
var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// Renderer 증가율 막대 차트
//
// 기본 글꼴에는 한글 글리프가 없으므로 UseFont 로 한글 글꼴을 등록하기 전에는
// 상권 코드와 영문 제목을 쓴다.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	hangul bool
}

// NewRenderer 기본 크기 차트
func NewRenderer() *Renderer {
	return &Renderer{
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// UseFont TTF/OTF 글꼴 등록 (프로세스 전역, 시작 시 한 번 호출)
func (r *Renderer) UseFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read font")
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return errors.Wrap(err, "parse font")
	}

	face := font.Face{
		Font: font.Font{Typeface: "sanggwon-hangul"},
		Face: fnt,
	}
	font.DefaultCache.Add(font.Collection{face})
	plot.DefaultFont = face.Font
	plotter.DefaultFont = face.Font
	r.hangul = true
	return nil
}

// Title 차트 제목
func (r *Renderer) Title(p model.Period, n int) string {
	if r.hangul {
		return fmt.Sprintf("%s 매출 증가율 TOP %d", p.Label(), n)
	}
	return fmt.Sprintf("Sales growth TOP %d (%s vs %s)", n, p, p.Previous())
}

func (r *Renderer) label(g model.GrowthRecord) string {
	if r.hangul && g.DistrictName != "" {
		return g.DistrictName
	}
	return g.DistrictCode
}

// GrowthBarPNG 상권별 증가율 막대 차트를 PNG 로 쓴다
func (r *Renderer) GrowthBarPNG(w io.Writer, title string, records []model.GrowthRecord) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	if r.hangul {
		p.X.Label.Text = "상권명"
		p.Y.Label.Text = "증가율(%)"
	} else {
		p.X.Label.Text = "District"
		p.Y.Label.Text = "Growth (%)"
	}

	if len(records) > 0 {
		values := make(plotter.Values, len(records))
		labels := make([]string, len(records))
		for i, g := range records {
			if !g.Undefined {
				values[i] = g.GrowthPct
			}
			labels[i] = r.label(g)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(24))
		if err != nil {
			return errors.Wrap(err, "build bar chart")
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)

		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi / 6
		p.X.Tick.Label.YAlign = draw.YTop
		p.X.Tick.Label.XAlign = draw.XRight

		for i, g := range records {
			text := fmt.Sprintf("%.1f%%", g.GrowthPct)
			if g.Undefined {
				text = "n/a"
			}
			lbl, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: float64(i), Y: values[i]}},
				Labels: []string{text},
			})
			if err != nil {
				return errors.Wrap(err, "build bar label")
			}
			p.Add(lbl)
		}
	}
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return errors.Wrap(err, "render chart")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write chart")
	}
	return nil
}
