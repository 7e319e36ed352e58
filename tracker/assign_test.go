package tracker

import (
	"testing"
)

func TestLinearAssignmentEmpty(t *testing.T) {

	matches, unmatchedRows, unmatchedCols, err := linearAssignment(nil, 3, 2, 0.8)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}

	if len(unmatchedRows) != 3 || len(unmatchedCols) != 2 {
		t.Errorf("expected 3 unmatched rows and 2 unmatched cols, got %v / %v",
			unmatchedRows, unmatchedCols)
	}
}

func TestLinearAssignmentThreshold(t *testing.T) {

	// the only possible pairing costs more than the threshold, no match
	// is better than a bad match
	costMatrix := [][]float64{
		{0.9},
	}

	matches, unmatchedRows, unmatchedCols, err := linearAssignment(costMatrix, 1, 1, 0.8)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}

	if len(unmatchedRows) != 1 || len(unmatchedCols) != 1 {
		t.Errorf("expected both sides unmatched, got %v / %v",
			unmatchedRows, unmatchedCols)
	}
}

func TestLinearAssignmentPairs(t *testing.T) {

	costMatrix := [][]float64{
		{0.2, 0.9},
		{0.9, 0.1},
	}

	matches, unmatchedRows, unmatchedCols, err := linearAssignment(costMatrix, 2, 2, 0.8)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 2 || len(unmatchedRows) != 0 || len(unmatchedCols) != 0 {
		t.Fatalf("expected 2 matches, got %v / %v / %v", matches,
			unmatchedRows, unmatchedCols)
	}

	seen := map[[2]int]bool{}

	for _, m := range matches {
		seen[m] = true
	}

	if !seen[[2]int{0, 0}] || !seen[[2]int{1, 1}] {
		t.Errorf("expected pairs (0,0) and (1,1), got %v", matches)
	}
}

func TestLinearAssignmentRectangular(t *testing.T) {

	// two rows, one column, only the cheaper row must win
	costMatrix := [][]float64{
		{0.6},
		{0.2},
	}

	matches, unmatchedRows, unmatchedCols, err := linearAssignment(costMatrix, 2, 1, 0.8)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 || matches[0] != [2]int{1, 0} {
		t.Errorf("expected match (1,0), got %v", matches)
	}

	if len(unmatchedRows) != 1 || unmatchedRows[0] != 0 {
		t.Errorf("expected row 0 unmatched, got %v", unmatchedRows)
	}

	if len(unmatchedCols) != 0 {
		t.Errorf("expected no unmatched cols, got %v", unmatchedCols)
	}
}

// TestLinearAssignmentNoDoubleClaim checks the 1:1 matching invariant, no
// row or column appears in more than one partition entry
func TestLinearAssignmentNoDoubleClaim(t *testing.T) {

	costMatrix := [][]float64{
		{0.1, 0.2, 0.7},
		{0.2, 0.1, 0.9},
		{0.3, 0.4, 0.95},
	}

	matches, unmatchedRows, unmatchedCols, err := linearAssignment(costMatrix, 3, 3, 0.8)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := map[int]int{}
	cols := map[int]int{}

	for _, m := range matches {
		rows[m[0]]++
		cols[m[1]]++
	}

	for _, r := range unmatchedRows {
		rows[r]++
	}

	for _, c := range unmatchedCols {
		cols[c]++
	}

	for r, n := range rows {
		if n != 1 {
			t.Errorf("row %d appears %d times across partitions", r, n)
		}
	}

	for c, n := range cols {
		if n != 1 {
			t.Errorf("col %d appears %d times across partitions", c, n)
		}
	}

	if len(rows) != 3 || len(cols) != 3 {
		t.Errorf("expected all rows and cols accounted for, got %v / %v",
			rows, cols)
	}

	// row 2's cheapest remaining option costs 0.95, over the threshold
	for _, m := range matches {
		if costMatrix[m[0]][m[1]] > 0.8 {
			t.Errorf("match %v exceeds cost threshold", m)
		}
	}
}
