package diagnostic_test

import (
	"testing"

	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/alphafounders/site/internal/sectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFor(t *testing.T) {
	fintech := diagnostic.MatchFor("fintech")
	assert.Equal(t, "FinTech Regulatory Specialist", fintech.Primary.Title)
	require.Len(t, fintech.Locked, 2)

	robotics := diagnostic.MatchFor("robotics")
	assert.Equal(t, sectors.Manufacturing, robotics.Sector)
	assert.Equal(t, diagnostic.MatchFor("manufacturing"), robotics)
	assert.Equal(t, robotics, diagnostic.MatchFor(""))
}

func TestEverySectorHasAMatch(t *testing.T) {
	ids := map[string]bool{}
	for _, s := range sectors.All {
		m := diagnostic.MatchFor(string(s))
		assert.Equal(t, s, m.Sector)
		require.Len(t, m.Locked, 2)
		for _, a := range append([]diagnostic.Advisor{m.Primary}, m.Locked...) {
			assert.False(t, ids[a.ID], "duplicate advisor id %s", a.ID)
			ids[a.ID] = true
			found, ok := diagnostic.AdvisorByID(a.ID)
			require.True(t, ok)
			assert.Equal(t, a, found)
		}
	}
	assert.Len(t, diagnostic.ShadowNetwork, 5)

	_, ok := diagnostic.AdvisorByID("nobody")
	assert.False(t, ok)
}
