package report

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type document struct {
	Summary    Summary       `json:"summary"`
	Deliveries []deliveryRow `json:"deliveries"`
}

type deliveryRow struct {
	ItemID      string  `json:"item_id"`
	Destination int     `json:"destination"`
	Arrival     int     `json:"arrival"`
	DeliveredAt int     `json:"delivered_at"`
	Weight      int     `json:"weight"`
	Fragile     bool    `json:"fragile"`
	Priority    int     `json:"priority"`
	Score       float64 `json:"score"`
}

// WriteFile writes the summary and every delivery as JSON to path.
// A path ending in ".zst" is zstd-compressed.
func (r *Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		if err := r.Write(f); err != nil {
			return err
		}
		return f.Close()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := r.Write(enc); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Write encodes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	doc := document{Summary: r.Summary()}
	for _, rec := range r.Delivered() {
		doc.Deliveries = append(doc.Deliveries, deliveryRow{
			ItemID:      rec.ItemID(),
			Destination: int(rec.Destination()),
			Arrival:     int(rec.Arrival()),
			DeliveredAt: int(rec.DeliveredAt()),
			Weight:      rec.Weight(),
			Fragile:     rec.Fragile(),
			Priority:    rec.Priority(),
			Score:       rec.Score(),
		})
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadFile decodes a report written by WriteFile.
func ReadFile(path string) (Summary, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, 0, err
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Summary{}, 0, err
		}
		defer dec.Close()
		src = dec
	}

	var doc document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return Summary{}, 0, err
	}
	return doc.Summary, len(doc.Deliveries), nil
}
