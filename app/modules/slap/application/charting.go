package slapservice

import (
	"bytes"
	"context"
	"slices"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxChartBars caps the offender chart to the most frequent offenders.
const maxChartBars = 20

// OffenderTally is how many of the scanned entries name one offender.
type OffenderTally struct {
	Offender sharedtypes.UserID
	Count    int
}

// TallyOffenders counts offenders, most frequent first, ties by ID.
func TallyOffenders(offenders []sharedtypes.UserID) []OffenderTally {
	counts := make(map[sharedtypes.UserID]int)
	for _, o := range offenders {
		counts[o]++
	}
	tallies := make([]OffenderTally, 0, len(counts))
	for o, n := range counts {
		tallies = append(tallies, OffenderTally{Offender: o, Count: n})
	}
	slices.SortFunc(tallies, func(a, b OffenderTally) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Offender < b.Offender {
			return -1
		}
		if a.Offender > b.Offender {
			return 1
		}
		return 0
	})
	return tallies
}

// OffenderChart renders a PNG bar chart of the offenders among the first
// limit guild entries.
func (s *SlapService) OffenderChart(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]byte, error) {
	offenders, err := s.GuildRecord(guildID).Offenders(ctx, limit)
	if err != nil {
		return nil, err
	}
	return renderOffenderChart(TallyOffenders(offenders))
}

func renderOffenderChart(tallies []OffenderTally) ([]byte, error) {
	if len(tallies) > maxChartBars {
		tallies = tallies[:maxChartBars]
	}

	bars := make([]chart.Value, 0, len(tallies))
	top := 1.0
	for _, t := range tallies {
		bars = append(bars, chart.Value{
			Label: t.Offender.String(),
			Value: float64(t.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("b23a48"),
				StrokeColor: drawing.ColorFromHex("8c2a36"),
				StrokeWidth: 1,
			},
		})
		top = max(top, float64(t.Count))
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no slaps", Value: 0})
	}

	graph := chart.BarChart{
		Title:      "Offenders",
		Width:      max(400, 120+len(bars)*48),
		Height:     400,
		BarWidth:   36,
		BarSpacing: 12,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
