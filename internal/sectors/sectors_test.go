package sectors_test

import (
	"testing"

	"github.com/alphafounders/site/internal/sectors"
	"github.com/stretchr/testify/assert"
)

func TestOrDefault(t *testing.T) {
	tests := []struct {
		in   string
		want sectors.Sector
	}{
		{in: "fintech", want: sectors.Fintech},
		{in: "saas", want: sectors.SaaS},
		{in: "robotics", want: sectors.Manufacturing},
		{in: "", want: sectors.Manufacturing},
		{in: "FINTECH", want: sectors.Manufacturing},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sectors.OrDefault(tt.in))
		})
	}
}

func TestAllHaveLabels(t *testing.T) {
	for _, s := range sectors.All {
		_, ok := sectors.Parse(string(s))
		assert.True(t, ok)
		assert.NotEqual(t, string(s), s.Label())
	}
}
