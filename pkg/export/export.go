// Package export writes simulation results to standard encodings.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/packlab/packsim/core/model"
)

// WriteJSON writes the pack result to w in JSON format.
func WriteJSON(w io.Writer, res *model.PackResult) error {
	enc := json.NewEncoder(w)
	return enc.Encode(res)
}

// WriteCSV writes every cell sample to w as CSV. Columns are the grid
// position, the in-run time in seconds and one column per channel with the
// unit in the header.
func WriteCSV(w io.Writer, res *model.PackResult) error {
	cw := csv.NewWriter(w)
	header := []string{"row", "col", "cell_id", "time_s"}
	if len(res.Cells) > 0 {
		for _, ch := range res.Cells[0].Series.Channels {
			header = append(header, ch.Name+"_"+ch.Unit)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range res.Cells {
		for i, t := range c.Series.Time {
			rec := []string{
				strconv.Itoa(c.Row),
				strconv.Itoa(c.Col),
				c.CellID,
				strconv.FormatFloat(t, 'f', -1, 64),
			}
			for _, ch := range c.Series.Channels {
				rec = append(rec, strconv.FormatFloat(ch.Values[i], 'f', -1, 64))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
