package finboard

// DefaultControlState returns the selections the dashboard opens with: both
// companies, liquidity ratios, and the full fiscal year span on record.
func DefaultControlState(dataset *Dataset) ControlState {
	yearMin, yearMax := dataset.YearBounds()
	return ControlState{
		Company: CompanyBoth,
		Group:   GroupLiquidity,
		YearMin: yearMin,
		YearMax: yearMax,
	}
}

// AffectedRegions compares two control states and reports which page regions
// must recompute. Cards track the company selection only; the panel tracks
// all three controls. An unchanged state affects nothing.
func AffectedRegions(previous, next ControlState) []Region {
	var regions []Region
	if previous.Company != next.Company {
		regions = append(regions, RegionCards)
	}
	if previous != next {
		regions = append(regions, RegionPanel)
	}
	return regions
}
