package model

import (
	"gonum.org/v1/gonum/stat"
)

// standardScaler centers and scales feature columns to zero mean and unit
// variance. It is fit on the training split only and then applied to both
// splits and to prediction input.
type standardScaler struct {
	mean []float64
	std  []float64
}

func fitScaler(x [][]float64) *standardScaler {
	cols := len(x[0])
	s := &standardScaler{
		mean: make([]float64, cols),
		std:  make([]float64, cols),
	}

	col := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		s.mean[j] = stat.Mean(col, nil)
		s.std[j] = stat.PopStdDev(col, nil)
		if s.std[j] == 0 {
			// Constant column (the shared sentiment feature): center only.
			s.std[j] = 1
		}
	}

	return s
}

func (s *standardScaler) transform(row []float64) []float64 {
	scaled := make([]float64, len(row))
	for j, v := range row {
		scaled[j] = (v - s.mean[j]) / s.std[j]
	}
	return scaled
}

func (s *standardScaler) transformAll(x [][]float64) [][]float64 {
	scaled := make([][]float64, len(x))
	for i, row := range x {
		scaled[i] = s.transform(row)
	}
	return scaled
}
