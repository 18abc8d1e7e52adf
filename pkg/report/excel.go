package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

const positionsSheet = "Positions"

// WritePositionsXLSX writes an open-position snapshot to an Excel workbook.
func WritePositionsXLSX(path string, positions []gateway.Position) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), positionsSheet)

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	headers := []string{"Ticket", "Symbol", "Side", "Volume", "Open Price", "Stop Loss", "Take Profit", "Profit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(positionsSheet, cell, h)
		fx.SetCellStyle(positionsSheet, cell, cell, headerStyle)
	}

	for row, pos := range positions {
		values := []interface{}{
			pos.Ticket,
			pos.Symbol,
			pos.Side.String(),
			pos.Volume,
			pos.OpenPrice,
			pos.StopLoss,
			pos.TakeProfit,
			pos.Profit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			fx.SetCellValue(positionsSheet, cell, v)
		}
	}

	summaryRow := len(positions) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	fx.SetCellValue(positionsSheet, cell, fmt.Sprintf("Snapshot taken %s, %d open positions",
		time.Now().Format("2006-01-02 15:04:05"), len(positions)))

	return fx.SaveAs(path)
}
