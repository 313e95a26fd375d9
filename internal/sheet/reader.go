package sheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrNoHeader is returned for a samplesheet without a header line.
var ErrNoHeader = errors.New("samplesheet has no header")

const maxLineSize = 4 * 1024 * 1024

// Read parses the samplesheet at path.
func Read(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samplesheet: %w", err)
	}
	defer f.Close()

	return Parse(path, f)
}

// Parse reads a tab separated samplesheet. The first line is the header,
// every following non-blank line is one record.
func Parse(path string, r io.Reader) (*Sheet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var s *Sheet
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if s == nil {
			line = strings.TrimPrefix(line, "\ufeff")
			header := strings.Split(line, "\t")
			for i := range header {
				header[i] = strings.TrimSpace(header[i])
			}
			s = New(path, header)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.Append(strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read samplesheet %s: %w", path, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoHeader)
	}

	slog.Debug("samplesheet parsed", "sheet", path, "columns", len(s.header), "records", s.Len())
	return s, nil
}

// Write writes the header and every record back in samplesheet format.
func (s *Sheet) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(s.header, "\t") + "\n"); err != nil {
		return err
	}
	for _, rec := range s.Records() {
		if _, err := bw.WriteString(rec.Format(s.header) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
