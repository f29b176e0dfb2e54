package analysis

import (
	"math"
	"strings"
)

// PeakPoint holds the distinct local maxima of a series observed at one
// parameter value.
type PeakPoint struct {
	Param  float64
	Values []float64
}

// LocalMaxima returns the interior samples strictly greater than their left
// neighbour and not smaller than their right one. A maximum within
// peakMergeTol of one already recorded is dropped.
func LocalMaxima(series []float64) []float64 {
	values := make([]float64, 0)

	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] >= series[i+1] && !nearAny(values, series[i]) {
			values = append(values, series[i])
		}
	}
	return values
}

const peakMergeTol = 1e-3

func nearAny(values []float64, v float64) bool {
	for _, w := range values {
		if math.Abs(w-v) < peakMergeTol {
			return true
		}
	}
	return false
}

// PeakDiagramToASCII draws peak heights against the swept parameter, one
// column group per parameter value.
func PeakDiagramToASCII(data []PeakPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
			} else {
				if v < minVal {
					minVal = v
				}
				if v > maxVal {
					maxVal = v
				}
			}
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}

		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
