// Package export writes completed backtest results to CSV for consumption
// by spreadsheets and plotting tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"quantbt/internal/backtest"
	"quantbt/internal/series"
)

var header = []string{
	"date",
	"price",
	"signal",
	"position",
	"strategy_return",
	"cumulative_return",
	"buy_hold_cumulative",
}

// WriteResult writes one row per net-return timestamp of the result. The
// price and signal columns are looked up from the (longer) price-domain
// series by timestamp.
func WriteResult(w io.Writer, res *backtest.Result, prices series.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	price := prices.Reindex(res.NetReturns.Times, 0)
	signal := res.Signals.Reindex(res.NetReturns.Times, 0)

	for i, ts := range res.NetReturns.Times {
		row := []string{
			ts.Format(time.DateOnly),
			formatFloat(price.Values[i]),
			strconv.Itoa(int(signal.Values[i])),
			strconv.Itoa(int(res.Positions.Values[i])),
			formatFloat(res.NetReturns.Values[i]),
			formatFloat(res.Equity.Values[i]),
			formatFloat(res.Benchmark.Values[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteResultFile is WriteResult targeting a file path.
func WriteResultFile(path string, res *backtest.Result, prices series.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteResult(f, res, prices); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
