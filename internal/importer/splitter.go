// =============================================================================
// WinBag2Hiopos - Import Splitter
// =============================================================================
//
// The reverse pipeline: one fixed-format accounting file (pcs.adm) arrives
// from the WinBag side and is fanned out into four semicolon-joined CSV-like
// files by record type:
//
//   "01"/"11" -> customers      (flag, code, name, address, description)
//   "02"/"22" -> articles       (flag, code, name, two numeric fields, price)
//   "03"/"33" -> main groups    (flag, group code, name)          [6th field empty]
//              / sub groups     (flag, group code, sub code, name) [6th field set]
//   "00"/"99" and anything else -> ignored
//
// The low record-type digit pair ("01", "02", "03") marks an unchanged record
// and maps to flag "False"; the doubled form ("11", "22", "33") marks an
// update and maps to "True".
//
// Input lines are comma-separated with individually quoted fields; lines too
// short for their transform yield an empty output line rather than failing
// the file. The accounting side writes windows-1252, so the file is decoded
// on the way in and the outputs are encoded the same way.
//
// =============================================================================

package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Result reports where the four derived files were written and how much of
// the input was consumed.
type Result struct {
	Customers  string
	Articles   string
	MainGroups string
	SubGroups  string

	LinesRead    int
	LinesIgnored int
}

// Split reads the accounting file at inputPath and writes the four derived
// files into outDir (created if needed), named with a timestamp so repeated
// imports never overwrite each other. Any error aborts this file's
// processing; the caller reports it without taking down the watcher.
func Split(inputPath, outDir string, now time.Time, log *logrus.Logger) (*Result, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create import output folder: %w", err)
	}

	stamp := now.Format("20060102-15-04-05")
	res := &Result{
		Customers:  filepath.Join(outDir, fmt.Sprintf("file_01_11.%s.csv", stamp)),
		Articles:   filepath.Join(outDir, fmt.Sprintf("file_artiklar.%s.csv", stamp)),
		MainGroups: filepath.Join(outDir, fmt.Sprintf("file_huvudgrupp.%s.csv", stamp)),
		SubGroups:  filepath.Join(outDir, fmt.Sprintf("file_varugrupp.%s.csv", stamp)),
	}

	outputs := make(map[string]*outFile, 4)
	defer func() {
		for _, o := range outputs {
			o.close()
		}
	}()
	for _, path := range []string{res.Customers, res.Articles, res.MainGroups, res.SubGroups} {
		o, err := newOutFile(path)
		if err != nil {
			return nil, err
		}
		outputs[path] = o
	}

	// The accounting side writes windows-1252; decode on the way in.
	reader := csv.NewReader(transform.NewReader(bufio.NewReader(in), charmap.Windows1252.NewDecoder()))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read import file: %w", err)
		}
		if len(record) == 0 || isBlank(record) {
			continue
		}
		res.LinesRead++

		code := strings.TrimSpace(record[0])
		switch code {
		case "01", "11":
			outputs[res.Customers].writeLine(transformCustomer(record))
		case "02", "22":
			outputs[res.Articles].writeLine(transformArticle(record))
		case "03", "33":
			if len(record) > 5 && strings.TrimSpace(record[5]) != "" {
				outputs[res.SubGroups].writeLine(transformSubGroup(record))
			} else {
				outputs[res.MainGroups].writeLine(transformMainGroup(record))
			}
		default:
			// 00 header, 99 footer and unknown codes carry no payload.
			res.LinesIgnored++
		}
	}

	for _, o := range outputs {
		if err := o.finish(); err != nil {
			return nil, err
		}
	}

	log.Infof("import split complete: %d line(s) read, %d ignored, outputs in %s",
		res.LinesRead, res.LinesIgnored, outDir)
	return res, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// FIELD TRANSFORMS
// =============================================================================

// recordFlag maps the unchanged/updated record-type pair onto a boolean flag.
func recordFlag(code string) string {
	switch code {
	case "01", "02", "03":
		return "False"
	default:
		return "True"
	}
}

// transformCustomer maps a 01/11 record to: flag, code, name, address,
// description. A record too short for the layout yields an empty line.
func transformCustomer(record []string) string {
	if len(record) < 7 {
		return ""
	}
	return joinRecord(
		recordFlag(strings.TrimSpace(record[0])),
		record[3], record[4], record[5], record[6],
	)
}

// transformArticle maps a 02/22 record to: flag, code, name, two numeric
// fields and the price with its redundant zero padding stripped.
func transformArticle(record []string) string {
	if len(record) < 21 {
		return ""
	}
	return joinRecord(
		recordFlag(strings.TrimSpace(record[0])),
		record[3], record[4], record[6], record[7],
		cleanPrice(record[8]),
	)
}

// transformMainGroup maps a 03/33 record with an empty sub-group field to:
// flag, group code, name.
func transformMainGroup(record []string) string {
	if len(record) < 7 {
		return ""
	}
	return joinRecord(
		recordFlag(strings.TrimSpace(record[0])),
		record[4], record[6],
	)
}

// transformSubGroup maps a 03/33 record with a populated sub-group field to:
// flag, group code, sub-group code, name.
func transformSubGroup(record []string) string {
	if len(record) < 7 {
		return ""
	}
	return joinRecord(
		recordFlag(strings.TrimSpace(record[0])),
		record[4], record[5], record[6],
	)
}

// cleanPrice strips the implied-cents zero pair and leading zero padding from
// a fixed-width price field: "7500" -> "75", "0060" -> "60", "0000" -> "0".
func cleanPrice(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "00")
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// joinRecord joins output fields the way the downstream consumer expects:
// semicolon-separated with surrounding spaces, no quoting.
func joinRecord(fields ...string) string {
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	return strings.Join(trimmed, " ; ")
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// outFile wraps one derived output file with its windows-1252 encoder.
type outFile struct {
	file   *os.File
	writer *bufio.Writer
	enc    *transform.Writer
}

func newOutFile(path string) (*outFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	w := bufio.NewWriter(f)
	return &outFile{
		file:   f,
		writer: w,
		enc:    transform.NewWriter(w, charmap.Windows1252.NewEncoder()),
	}, nil
}

func (o *outFile) writeLine(line string) {
	// Write errors surface in finish via the buffered writer.
	io.WriteString(o.enc, line+"\n")
}

func (o *outFile) finish() error {
	// Close the encoder first so any pending transform state reaches the
	// buffered writer before it is flushed.
	if err := o.enc.Close(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(o.file.Name()), err)
	}
	if err := o.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filepath.Base(o.file.Name()), err)
	}
	if err := o.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", filepath.Base(o.file.Name()), err)
	}
	return nil
}

func (o *outFile) close() {
	o.file.Close()
}
