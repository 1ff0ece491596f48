// =============================================================================
// WinBag2Hiopos - Export Run Orchestration
// =============================================================================
//
// A Run is one complete transcoding pass over a loaded batch of exports:
//
//   1. Build the store <-> series map from the sales table
//   2. Create one empty output file per resolved store
//   3. Invoke the record builders in fixed order
//      (00, 01/02, 03, 04, 05, 06, 07, 08, 09, 10, 11, 12, 99)
//   4. Done - files are final once the 99 footer is appended
//
// All state is scoped to the Run value; nothing survives between runs. The
// caller (the watch loop or the export command) owns serialization: a Run is
// single-threaded and must not share its target folder with a concurrent run.
//
// Fatal errors (missing inputs, I/O failures) abort the run. Row-level
// problems - a series that resolves to no file, an unparseable amount - are
// logged and skipped so one bad row never takes down the batch.
//
// =============================================================================

package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// Run holds the state of one export pass. Create with New, use once.
type Run struct {
	// ID correlates every log line of this run.
	ID string

	in     *pos.Inputs
	log    *logrus.Logger
	series *SeriesMap
	files  *FileSet

	// firstSale keeps the first sales row per store; the store identity
	// records (03/05/07/09/11) take their register and date from it.
	firstSale map[string]pos.SalesRow
}

// New creates a Run over an already loaded input batch.
func New(in *pos.Inputs, log *logrus.Logger) *Run {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Run{
		ID:  uuid.New().String(),
		in:  in,
		log: log,
	}
}

// Execute performs the full transcoding pass, writing the interchange files
// into targetDir. now supplies the HHMM component of the file names.
func (r *Run) Execute(targetDir string, now time.Time) error {
	if len(r.in.Sales) == 0 {
		return fmt.Errorf("sales export contains no rows, nothing to transcode")
	}

	log := r.log.WithField("run", r.ID)
	log.Infof("starting export run: %d sales, %d payment, %d delivery rows",
		len(r.in.Sales), len(r.in.Payments), len(r.in.Deliveries))

	r.series = BuildSeriesMap(r.in.Sales)

	r.firstSale = make(map[string]pos.SalesRow)
	for _, row := range r.in.Sales {
		if _, ok := r.firstSale[row.Store]; !ok {
			r.firstSale[row.Store] = row
		}
	}

	salesDate := normalize.CompactDate(r.in.Sales[0].Date)
	files, err := CreateFiles(r.series, targetDir, salesDate, now)
	if err != nil {
		return err
	}
	r.files = files
	log.Infof("created %d output file(s)", len(files.All()))

	steps := []struct {
		name  string
		build func() error
	}{
		{"00 header", r.writeHeaders},
		{"01/02 delivery notes", r.buildDeliveryRecords},
		{"03 store identity", func() error { return r.buildStoreIdentity("03") }},
		{"04 payment summary", r.buildPaymentRecords},
		{"05 store identity", func() error { return r.buildStoreIdentity("05") }},
		{"06 line items", r.buildLineItems},
		{"07 store identity", func() error { return r.buildStoreIdentity("07") }},
		{"08 product groups", r.buildProductGroups},
		{"09 store identity", func() error { return r.buildStoreIdentity("09") }},
		{"10 hourly summary", r.buildHourly},
		{"11 store identity", func() error { return r.buildStoreIdentity("11") }},
		{"12 VAT summary", r.buildVAT},
		{"99 footer", r.writeFooters},
	}

	for _, step := range steps {
		if err := step.build(); err != nil {
			return fmt.Errorf("record builder %s: %w", step.name, err)
		}
	}

	log.Info("export run complete")
	return nil
}

// Files exposes the created output files, for reporting after a run.
func (r *Run) Files() []*OutputFile {
	if r.files == nil {
		return nil
	}
	return r.files.All()
}

// fileForSerie routes a source row's series value to its output file.
// A miss is a row-level condition: warn and let the caller skip.
func (r *Run) fileForSerie(serie string) (*OutputFile, bool) {
	store, ok := r.series.StoreFor(serie)
	if !ok {
		r.log.WithField("run", r.ID).
			Warnf("serie %q does not resolve to any store, skipping row", serie)
		return nil, false
	}
	f, ok := r.files.ForStore(store)
	if !ok {
		r.log.WithField("run", r.ID).
			Warnf("store %q has no output file, skipping row", store)
		return nil, false
	}
	return f, true
}

// fileForStore routes a store code directly to its output file.
func (r *Run) fileForStore(store string) (*OutputFile, bool) {
	f, ok := r.files.ForStore(store)
	if !ok {
		r.log.WithField("run", r.ID).
			Warnf("store %q has no output file, skipping row", store)
	}
	return f, ok
}

// =============================================================================
// PER-FILE ROW ACCUMULATION
// =============================================================================

// fileRows collects the rows a builder produces, grouped per output file, so
// the builder can flush each file with a single append.
type fileRows struct {
	order []*OutputFile
	rows  map[*OutputFile][][]string
}

func newFileRows() *fileRows {
	return &fileRows{rows: make(map[*OutputFile][][]string)}
}

func (fr *fileRows) add(f *OutputFile, row []string) {
	if _, ok := fr.rows[f]; !ok {
		fr.order = append(fr.order, f)
	}
	fr.rows[f] = append(fr.rows[f], row)
}

// flush appends every accumulated row to its file, in file order.
func (fr *fileRows) flush() error {
	for _, f := range fr.order {
		if err := f.Append(fr.rows[f]...); err != nil {
			return err
		}
	}
	return nil
}
