package tracker

import (
	"fmt"
)

// iouDistance builds the association cost matrix between the predicted
// boxes of the given tracks (rows) and the detection boxes (columns).
// Cost is the IoU distance 1-IoU, in range [0,1].
func iouDistance(tracks []*Track, dets []Detection) [][]float64 {

	if len(tracks)*len(dets) == 0 {
		return nil
	}

	costMatrix := make([][]float64, len(tracks))

	for i, track := range tracks {

		row := make([]float64, len(dets))
		predicted := track.GetPredictedBox()

		for j, det := range dets {
			row[j] = 1 - predicted.CalcIoU(det.Box)
		}

		costMatrix[i] = row
	}

	return costMatrix
}

// linearAssignment solves the minimum cost bipartite matching over the
// cost matrix, rejecting any pairing whose cost exceeds thresh.  It returns
// the matched (row, column) index pairs and the row and column indices left
// unmatched.  nRows and nCols give the matrix dimensions so the empty
// matrix case still reports all indices as unmatched.
func linearAssignment(costMatrix [][]float64, nRows, nCols int,
	thresh float64) (matches [][2]int, unmatchedRows, unmatchedCols []int,
	err error) {

	if len(costMatrix) == 0 {
		for i := 0; i < nRows; i++ {
			unmatchedRows = append(unmatchedRows, i)
		}
		for j := 0; j < nCols; j++ {
			unmatchedCols = append(unmatchedCols, j)
		}
		return
	}

	rowsol, colsol, err := solveWithLimit(costMatrix, thresh)

	if err != nil {
		return nil, nil, nil, fmt.Errorf("assignment solver failed: %w", err)
	}

	for i, sol := range rowsol {
		// drop any pairing the solver settled on that is still over the
		// cost threshold
		if sol >= 0 && costMatrix[i][sol] <= thresh {
			matches = append(matches, [2]int{i, sol})
		} else {
			if sol >= 0 {
				colsol[sol] = -1
			}
			unmatchedRows = append(unmatchedRows, i)
		}
	}

	for j, sol := range colsol {
		if sol < 0 {
			unmatchedCols = append(unmatchedCols, j)
		}
	}

	return
}

// solveWithLimit solves a rectangular cost limited assignment problem by
// embedding the cost matrix into a square matrix of size nRows+nCols where
// every real row and column also has a dummy partner priced at costLimit/2.
// A real pairing costing more than costLimit then loses to its two dummies
// and both sides come back unassigned.
func solveWithLimit(cost [][]float64, costLimit float64) (rowsol, colsol []int,
	err error) {

	nRows := len(cost)
	nCols := len(cost[0])
	n := nRows + nCols

	extended := make([][]float64, n)

	for i := range extended {
		extended[i] = make([]float64, n)

		for j := range extended[i] {
			extended[i][j] = costLimit / 2.0
		}
	}

	// dummy rows against dummy columns cost nothing
	for i := nRows; i < n; i++ {
		for j := nCols; j < n; j++ {
			extended[i][j] = 0
		}
	}

	for i := 0; i < nRows; i++ {
		copy(extended[i][:nCols], cost[i])
	}

	x := make([]int, n)
	y := make([]int, n)

	if err := lapjv(n, extended, x, y); err != nil {
		return nil, nil, err
	}

	rowsol = make([]int, nRows)
	colsol = make([]int, nCols)

	for i := 0; i < nRows; i++ {
		if x[i] >= nCols {
			rowsol[i] = -1
		} else {
			rowsol[i] = x[i]
		}
	}

	for j := 0; j < nCols; j++ {
		if y[j] >= nRows {
			colsol[j] = -1
		} else {
			colsol[j] = y[j]
		}
	}

	return rowsol, colsol, nil
}
