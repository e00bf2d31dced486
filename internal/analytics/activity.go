package analytics

import (
	"time"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// WeekActivityMap counts messages per weekday name, busiest first.
func WeekActivityMap(records []parse.Record) []Count {
	c := newCounter()
	for _, r := range records {
		c.add(r.DayName)
	}
	return c.mostCommon(0)
}

// MonthActivityMap counts messages per month name, busiest first.
func MonthActivityMap(records []parse.Record) []Count {
	c := newCounter()
	for _, r := range records {
		c.add(r.Month)
	}
	return c.mostCommon(0)
}

// Heatmap is a weekday by hour-bucket message count table. Only weekdays and
// buckets that occur are present; missing combinations hold 0.
type Heatmap struct {
	Rows    []string `json:"rows" yaml:"rows"`       // weekday names, Monday first
	Columns []string `json:"columns" yaml:"columns"` // hour buckets, in hour order
	Cells   [][]int  `json:"cells" yaml:"cells"`     // Cells[row][column]
}

// Total is the sum of all cells.
func (h Heatmap) Total() int {
	t := 0
	for _, row := range h.Cells {
		for _, v := range row {
			t += v
		}
	}
	return t
}

// Cell returns the count for a weekday and bucket, 0 when either is absent.
func (h Heatmap) Cell(day, bucket string) int {
	for i, d := range h.Rows {
		if d != day {
			continue
		}
		for j, b := range h.Columns {
			if b == bucket {
				return h.Cells[i][j]
			}
		}
	}
	return 0
}

// ActivityHeatmap pivots message counts by weekday and hour bucket.
func ActivityHeatmap(records []parse.Record) Heatmap {
	var days [7]bool
	var hours [24]bool
	var counts [7][24]int
	for _, r := range records {
		d := mondayIndex(r.Timestamp.Weekday())
		days[d] = true
		hours[r.Hour] = true
		counts[d][r.Hour]++
	}

	h := Heatmap{Rows: []string{}, Columns: []string{}, Cells: [][]int{}}
	var hourIdx []int
	for hr, ok := range hours {
		if ok {
			hourIdx = append(hourIdx, hr)
			h.Columns = append(h.Columns, parse.HourBucket(hr))
		}
	}
	for d, ok := range days {
		if !ok {
			continue
		}
		h.Rows = append(h.Rows, time.Weekday((d+1)%7).String())
		row := make([]int, len(hourIdx))
		for j, hr := range hourIdx {
			row[j] = counts[d][hr]
		}
		h.Cells = append(h.Cells, row)
	}
	return h
}

// mondayIndex maps Monday..Sunday to 0..6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
