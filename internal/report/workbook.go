package report

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/njchilds90/go-treesearch/internal/stats"
	"github.com/njchilds90/go-treesearch/internal/usage"
)

// SummarySheet is the name of the sheet holding averages over all runs.
const SummarySheet = "Summary"

// Fixed cell positions of a run worksheet (1-based).
const (
	colTitle = 1
	colTime  = 2
	colCPU   = 4
	colRAM   = 5

	rowHeader     = 1
	rowFirstValue = 2
	rowTotal      = rowFirstValue + 5
	rowAverageCPU = rowTotal + 2
	rowAverageRAM = rowAverageCPU + 1
)

// Params describes the benchmark that produced a workbook.
type Params struct {
	TreePath       string
	SampleInterval time.Duration
	Letters        int
	Depth          int
	Children       int
}

// spreadsheet is the part of *excelize.File the workbook uses.
type spreadsheet interface {
	NewSheet(sheet string) (int, error)
	DeleteSheet(sheet string) error
	GetSheetIndex(sheet string) (int, error)
	GetSheetName(index int) string
	SetSheetName(source, target string) error
	SetPanes(sheet string, panes *excelize.Panes) error
	SetCellValue(sheet, cell string, value interface{}) error
	SetCellStyle(sheet, topLeftCell, bottomRightCell string, styleID int) error
	NewStyle(style *excelize.Style) (int, error)
	SaveAs(name string, opts ...excelize.Options) error
	Close() error
}

// Workbook collects one worksheet per benchmark run and a summary sheet.
// It is not safe for concurrent use.
type Workbook struct {
	path   string
	params Params
	file   spreadsheet

	borderStyle int
	centerStyle int

	sheets   []string
	averages map[string]*stats.Collector
	cpu      *stats.Collector
	ram      *stats.Collector
}

// New prepares a workbook that Save writes to path. The parent directory
// is created immediately so that an unusable path fails early.
func New(path string, params Params) (*Workbook, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return nil, errors.Errorf("report file %q must have the .xlsx extension", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create report directory for %s", path)
	}

	f := excelize.NewFile()
	wb := &Workbook{
		path:     path,
		params:   params,
		file:     f,
		averages: make(map[string]*stats.Collector, len(measureRows)),
		cpu:      stats.New(),
		ram:      stats.New(),
	}
	for _, r := range measureRows {
		wb.averages[r.name] = stats.New()
	}

	if err := wb.initStyles(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to create summary sheet")
	}
	return wb, nil
}

func (w *Workbook) initStyles() error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	var err error
	w.borderStyle, err = w.file.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return errors.Wrap(err, "failed to create border style")
	}
	w.centerStyle, err = w.file.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create centered style")
	}
	return nil
}

// Sheets returns the names of the run worksheets appended so far.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// AppendWorksheet adds a worksheet for one run. Every name in measures
// must be one of the Measure constants; otherwise nothing is written and
// an error wrapping ErrUnknownMeasure is returned. If writing the sheet
// fails it is removed again and the run does not count towards the
// summary.
func (w *Workbook) AppendWorksheet(name string, measures Measures, samples []usage.Usage) error {
	if err := measures.Validate(); err != nil {
		return err
	}
	if name == SummarySheet {
		return errors.Errorf("worksheet name %q is reserved", name)
	}
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return errors.Wrapf(err, "invalid worksheet name %q", name)
	}
	if idx >= 0 {
		return errors.Errorf("worksheet %q already exists", name)
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return errors.Wrapf(err, "failed to add worksheet %q", name)
	}

	if err := w.fillWorksheet(name, measures, samples); err != nil {
		if derr := w.file.DeleteSheet(name); derr != nil {
			return multierror.Append(err, errors.Wrapf(derr, "failed to remove worksheet %q", name))
		}
		return err
	}

	w.sheets = append(w.sheets, name)
	w.record(measures, samples)
	return nil
}

func (w *Workbook) fillWorksheet(name string, measures Measures, samples []usage.Usage) error {
	if err := w.file.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		TopLeftCell: "B1",
		ActivePane:  "topRight",
	}); err != nil {
		return errors.Wrapf(err, "failed to freeze panes of %q", name)
	}
	if err := w.writeTitles(name); err != nil {
		return err
	}
	return w.writeData(name, measures, samples)
}

// record adds a fully written run to the summary averages.
func (w *Workbook) record(measures Measures, samples []usage.Usage) {
	for _, r := range measureRows {
		if d, ok := measures[r.name]; ok {
			w.averages[r.name].Record(milliseconds(d))
		}
	}
	for _, s := range samples {
		w.cpu.Record(s.CPU)
		w.ram.Record(s.RAM)
	}
}

func (w *Workbook) writeTitles(sheet string) error {
	cells := []struct {
		col, row int
		text     string
		style    int
	}{
		{colTitle, rowHeader, "Title", w.centerStyle},
		{colTitle, rowTotal, "Total", w.borderStyle},
		{colTitle, rowAverageCPU, "Average CPU (%)", w.borderStyle},
		{colTitle, rowAverageRAM, "Average RAM (MB)", w.borderStyle},
		{colTime, rowHeader, "Time (ms)", w.centerStyle},
		{colCPU, rowHeader, "CPU (%)", w.centerStyle},
		{colRAM, rowHeader, "RAM (MB)", w.centerStyle},
	}
	for i, r := range measureRows {
		if err := w.write(sheet, colTitle, rowFirstValue+i, r.title, w.borderStyle); err != nil {
			return err
		}
	}
	for _, c := range cells {
		if err := w.write(sheet, c.col, c.row, c.text, c.style); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeData(sheet string, measures Measures, samples []usage.Usage) error {
	total := stats.New()
	for i, r := range measureRows {
		d, ok := measures[r.name]
		if !ok {
			continue
		}
		ms := milliseconds(d)
		if err := w.write(sheet, colTime, rowFirstValue+i, ms, w.centerStyle); err != nil {
			return err
		}
		total.Record(ms)
	}
	if err := w.write(sheet, colTime, rowTotal, total.Sum(), w.centerStyle); err != nil {
		return err
	}

	cpu, ram := stats.New(), stats.New()
	for i, s := range samples {
		row := rowFirstValue + i
		if err := w.write(sheet, colCPU, row, s.CPU, w.centerStyle); err != nil {
			return err
		}
		if err := w.write(sheet, colRAM, row, s.RAM, w.centerStyle); err != nil {
			return err
		}
		cpu.Record(s.CPU)
		ram.Record(s.RAM)
	}

	if avg, ok := cpu.Average(); ok {
		if err := w.write(sheet, colTime, rowAverageCPU, avg, w.centerStyle); err != nil {
			return err
		}
	}
	if avg, ok := ram.Average(); ok {
		if err := w.write(sheet, colTime, rowAverageRAM, avg, w.centerStyle); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeSummary() error {
	sheet := SummarySheet
	if err := w.write(sheet, colTitle, rowHeader, "Title", w.centerStyle); err != nil {
		return err
	}
	if err := w.write(sheet, colTime, rowHeader, "Average Time (ms)", w.centerStyle); err != nil {
		return err
	}
	for i, r := range measureRows {
		row := rowFirstValue + i
		if err := w.write(sheet, colTitle, row, r.title, w.borderStyle); err != nil {
			return err
		}
		if avg, ok := w.averages[r.name].Average(); ok {
			if err := w.write(sheet, colTime, row, avg, w.centerStyle); err != nil {
				return err
			}
		}
	}

	if err := w.write(sheet, colTitle, rowAverageCPU, "Average CPU (%)", w.borderStyle); err != nil {
		return err
	}
	if err := w.write(sheet, colTitle, rowAverageRAM, "Average RAM (MB)", w.borderStyle); err != nil {
		return err
	}
	if avg, ok := w.cpu.Average(); ok {
		if err := w.write(sheet, colTime, rowAverageCPU, avg, w.centerStyle); err != nil {
			return err
		}
	}
	if avg, ok := w.ram.Average(); ok {
		if err := w.write(sheet, colTime, rowAverageRAM, avg, w.centerStyle); err != nil {
			return err
		}
	}

	params := []struct {
		title string
		value interface{}
	}{
		{"Runs", len(w.sheets)},
		{"Letters", w.params.Letters},
		{"Depth", w.params.Depth},
		{"Children", w.params.Children},
		{"Sample Interval", w.params.SampleInterval.String()},
		{"Tree Path", w.params.TreePath},
	}
	for i, p := range params {
		row := rowAverageRAM + 2 + i
		if err := w.write(sheet, colTitle, row, p.title, w.borderStyle); err != nil {
			return err
		}
		if err := w.write(sheet, colTime, row, p.value, w.centerStyle); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the summary sheet, saves the workbook to its path and
// releases it. The workbook must not be used afterwards.
func (w *Workbook) Save() error {
	var result error
	if err := w.writeSummary(); err != nil {
		result = multierror.Append(result, err)
	} else if err := w.file.SaveAs(w.path); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "failed to save report %s", w.path))
	}
	if err := w.file.Close(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "failed to close report"))
	}
	return result
}

func (w *Workbook) write(sheet string, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.Wrap(err, "invalid cell")
	}
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return errors.Wrapf(err, "failed to write %s!%s", sheet, cell)
	}
	if err := w.file.SetCellStyle(sheet, cell, cell, style); err != nil {
		return errors.Wrapf(err, "failed to style %s!%s", sheet, cell)
	}
	return nil
}
