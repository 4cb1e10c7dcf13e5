package ledger

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteCSV writes the row-per-slot ledger to path, grounded on the
// teacher's WriteLedgerCSV.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"day", "slot", "price", "action", "net_mwh", "cashflow", "level_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Slot),
			fmtFloat(r.Price),
			r.Action.String(),
			fmtFloat(r.NetMWh),
			fmtFloat(r.Cashflow),
			fmtFloat(r.LevelMWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
