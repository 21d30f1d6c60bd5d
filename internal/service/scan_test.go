package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScanLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ScanEntry
	}{
		{
			name: "bare upc counts as one",
			text: "012345678905",
			want: []ScanEntry{{UPC: "012345678905", Qty: 1}},
		},
		{
			name: "upc with quantity",
			text: "012345678905,4",
			want: []ScanEntry{{UPC: "012345678905", Qty: 4}},
		},
		{
			name: "repeated scans aggregate",
			text: "AAA\nAAA\nAAA,2",
			want: []ScanEntry{{UPC: "AAA", Qty: 4}},
		},
		{
			name: "first seen order preserved",
			text: "BBB\nAAA\nBBB",
			want: []ScanEntry{{UPC: "BBB", Qty: 2}, {UPC: "AAA", Qty: 1}},
		},
		{
			name: "blank lines and whitespace skipped",
			text: "  \nAAA\n\n  BBB , 2 \n",
			want: []ScanEntry{{UPC: "AAA", Qty: 1}, {UPC: "BBB", Qty: 2}},
		},
		{
			name: "non-positive and junk quantities skipped",
			text: "AAA,0\nBBB,-3\nCCC,x\nDDD,1",
			want: []ScanEntry{{UPC: "DDD", Qty: 1}},
		},
		{
			name: "empty input",
			text: "",
			want: []ScanEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScanLines(tt.text))
		})
	}
}
