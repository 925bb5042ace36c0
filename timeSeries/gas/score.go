package gas

// Score 密度(非对数密度)对 loc、scale 的偏导
//
//	gradLoc   = d·(x-loc)/scale²
//	gradScale = d·(x-loc)/scale³ - d/scale
func Score(x, loc, scale, density float64) (gradLoc, gradScale float64) {
	diff := x - loc
	gradLoc = density * diff / (scale * scale)
	gradScale = density*diff/(scale*scale*scale) - density/scale
	return
}
