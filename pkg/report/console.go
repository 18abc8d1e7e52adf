// Package report renders position snapshots for humans: console tables and
// Excel workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

// RenderPositions writes an open-position table to w.
func RenderPositions(w io.Writer, positions []gateway.Position) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Ticket", "Symbol", "Side", "Volume", "Open", "SL", "TP", "Profit"})
	for _, pos := range positions {
		t.AppendRow(table.Row{
			pos.Ticket,
			pos.Symbol,
			pos.Side.String(),
			fmt.Sprintf("%.2f", pos.Volume),
			fmt.Sprintf("%.5f", pos.OpenPrice),
			fmt.Sprintf("%.5f", pos.StopLoss),
			fmt.Sprintf("%.5f", pos.TakeProfit),
			fmt.Sprintf("%.2f", pos.Profit),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Volume", Align: text.AlignRight},
		{Name: "Open", Align: text.AlignRight},
		{Name: "SL", Align: text.AlignRight},
		{Name: "TP", Align: text.AlignRight},
		{Name: "Profit", Align: text.AlignRight},
	})

	totalProfit := 0.0
	for _, pos := range positions {
		totalProfit += pos.Profit
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Total", fmt.Sprintf("%.2f", totalProfit)})

	t.Render()
}
