package indicator

// VolumeRatio divides the latest volume by the mean volume of the
// preceding period bars (excluding the latest). Returns 1.0 on
// insufficient history and 0.0 when the mean is zero.
func (e *Engine) VolumeRatio(period int) float64 {
	vols := e.series.Volumes()
	if len(vols) < period+1 {
		return 1.0
	}

	var sum float64
	for _, v := range vols[len(vols)-period-1 : len(vols)-1] {
		sum += v
	}
	avg := sum / float64(period)

	if avg == 0 {
		return 0.0
	}

	return vols[len(vols)-1] / avg
}
