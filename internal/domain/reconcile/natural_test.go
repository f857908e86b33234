package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"201", "1001", true},
		{"1001", "201", false},
		{"A-2", "A-10", true},
		{"A-10", "B-1", true},
		{"101", "101", false},
		{"101", "101A", true},
		{"07", "7", false},
		{"7", "07", true},
		{"", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, naturalLess(tt.a, tt.b))
		})
	}
}
