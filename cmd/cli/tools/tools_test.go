package tools_test

import (
	"bytes"
	"testing"

	"github.com/alphafounders/site/cmd/cli/tools"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestEquity(t *testing.T) {
	out := execute(t, tools.Equity,
		"--stage", "idea", "--role", "board", "--experience", "serialFounder", "--hours", "5")
	assert.Equal(t, "recommended 0.83%\nrange       0.66% to 1%\n", out)
}

func TestChecklist(t *testing.T) {
	out := execute(t, tools.Checklist, "product-1", "market-2", "product-1")
	assert.Contains(t, out, "total 15 / 100\n")
	assert.Contains(t, out, "product     32% red\n")
}

func TestTiers(t *testing.T) {
	out := execute(t, tools.Tiers, "--sector", "fintech", "--round", "seed")
	assert.Contains(t, out, "Tier S\n")
	assert.Contains(t, out, "Northstar Ventures")
	assert.Contains(t, out, "  *** Ledger Street Fund ($2M-$8M)\n")
}
