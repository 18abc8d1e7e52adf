package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

func samplePositions() []gateway.Position {
	return []gateway.Position{
		{Ticket: 1, Symbol: "EURUSD", Side: gateway.SideBuy, Volume: 0.05,
			OpenPrice: 1.10000, StopLoss: 1.09800, TakeProfit: 1.10400, Profit: 2.50},
		{Ticket: 2, Symbol: "EURUSD", Side: gateway.SideSell, Volume: 0.10,
			OpenPrice: 1.10200, StopLoss: 1.10500, TakeProfit: 1.09700, Profit: -1.25},
	}
}

func TestRenderPositions(t *testing.T) {
	var buf bytes.Buffer
	RenderPositions(&buf, samplePositions())

	out := buf.String()
	assert.Contains(t, out, "EURUSD")
	assert.Contains(t, out, "buy")
	assert.Contains(t, out, "sell")
	assert.Contains(t, out, "1.09800")
	assert.Contains(t, out, "TOTAL") // footer cells are upper-cased by the style
	assert.Contains(t, out, "1.25")  // 2.50 - 1.25
}

func TestWritePositionsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "positions.xlsx")
	require.NoError(t, WritePositionsXLSX(path, samplePositions()))

	_, err := os.Stat(path)
	require.NoError(t, err)

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	rows, err := fx.GetRows("Positions")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Ticket", rows[0][0])
	assert.Equal(t, "EURUSD", rows[1][1])
	assert.Equal(t, "sell", rows[2][2])
}
