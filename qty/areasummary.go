package qty

// AreaSummary rolls the wall, opening and floor areas into one view.
type AreaSummary struct {
	WallAreaM2     float64 `json:"wall_area_m2"`
	OpeningsAreaM2 float64 `json:"openings_area_m2"`
	NetWallAreaM2  float64 `json:"net_wall_area_m2"`
	FloorAreaM2    float64 `json:"floor_area_m2"`
	GrossAreaM2    float64 `json:"gross_area_m2"`
}

// SummarizeAreas builds the combined area summary. Nil inputs count as
// zero so the summary works for partial runs.
func SummarizeAreas(wallAreaM2 float64, openings *Openings, floor *Flooring) *AreaSummary {
	s := &AreaSummary{WallAreaM2: round2(wallAreaM2)}
	if openings != nil {
		s.OpeningsAreaM2 = openings.TotalAreaM2()
	}
	if floor != nil {
		s.FloorAreaM2 = floor.TotalAreaM2
	}
	net := s.WallAreaM2 - s.OpeningsAreaM2
	if net < 0 {
		net = 0
	}
	s.NetWallAreaM2 = round2(net)
	s.GrossAreaM2 = round2(s.WallAreaM2 + s.FloorAreaM2)
	return s
}
