// Package customers resolves the customer-id population a run generates
// deposits for: either loaded from an external CSV extract (establishing
// referential integrity with an existing customer dataset) or synthesized.
package customers

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// IDColumn is the required column in an external customer file.
const IDColumn = "customer_id"

// Synthesize returns n synthetic customer ids of the form CUST-NNNNNN.
func Synthesize(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("CUST-%06d", i+1)
	}
	return ids
}

// LoadFile reads customer ids from a CSV file with a customer_id column.
// Large warehouse extracts often arrive compressed; .gz and .xz files are
// decompressed transparently based on the extension.
//
// Every row's id is used verbatim and in file order, so generated deposits
// reference exactly the supplied population. The result is never nil: a
// header-only extract is an explicit empty population, not a request to
// synthesize one.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open customer file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("customer file %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("customer file %s: %w", path, err)
		}
		r = xr
	}

	return readIDs(r, path)
}

func readIDs(r io.Reader, path string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("customer file %s: read header: %w", path, err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), IDColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("customer file %s: no %q column in header %v", path, IDColumn, header)
	}

	ids := []string{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("customer file %s: %w", path, err)
		}
		if col >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[col])
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
