package insights

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rcliao/petlife/internal/model"
)

// WeightPoint is one parsed weight measurement.
type WeightPoint struct {
	RecordID string  `json:"recordId" yaml:"recordId"`
	Date     string  `json:"date" yaml:"date"`
	Kg       float64 `json:"kg" yaml:"kg"`
}

// Weights extracts Weight records, oldest first. Descriptions that do not
// parse as a finite number are skipped; a decimal comma is accepted.
func Weights(records []model.MedicalRecord) []WeightPoint {
	type point struct {
		WeightPoint
		created int64
	}
	var pts []point
	for _, r := range records {
		if r.Type != model.RecordWeight {
			continue
		}
		kg, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(r.Description), ",", ".", 1), 64)
		if err != nil || math.IsNaN(kg) || math.IsInf(kg, 0) {
			continue
		}
		pts = append(pts, point{WeightPoint{RecordID: r.ID, Date: r.Date, Kg: kg}, r.CreatedAt})
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Date != pts[j].Date {
			return pts[i].Date < pts[j].Date
		}
		if pts[i].created != pts[j].created {
			return pts[i].created < pts[j].created
		}
		return pts[i].RecordID < pts[j].RecordID
	})

	out := make([]WeightPoint, len(pts))
	for i, p := range pts {
		out[i] = p.WeightPoint
	}
	return out
}
