package trigdet

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// Writer persists decoded events to an HDF5 file. The Run group holds the
// event and run-info tables; the Trig group holds the variable names (written
// once, in snapshot order) and one row of values per event.
type Writer struct {
	File         *hdf5.File
	Filename     string
	FirstEvt     bool
	RunGroup     *hdf5.Group
	TrigGroup    *hdf5.Group
	EventTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	NamesTable   *hdf5.Dataset
	ValuesArray  *hdf5.Dataset
	Compression  int
	EvtCounter   int
	nVars        int
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{Filename: filename, Compression: compressionLevel}

	var err error
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, err
	}
	if writer.TrigGroup, err = createGroup(writer.File, "Trig"); err != nil {
		return nil, err
	}
	if writer.EventTable, err = createTable(writer.RunGroup, "events", EventDataHDF5{}, compressionLevel); err != nil {
		return nil, err
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}, compressionLevel); err != nil {
		return nil, err
	}
	if writer.NamesTable, err = createTable(writer.TrigGroup, "names", VarNameHDF5{}, compressionLevel); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Writing decoded events to %s", filename)
	logger.Info(message, "writer")
	return writer, nil
}

// WriteEvent appends one decoded event. The first event fixes the variable
// layout: the run number, the name table and the width of the values array
// all come from it.
func (w *Writer) WriteEvent(event *EventRecord) error {
	if !w.FirstEvt {
		if err := writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(event.RunNumber)}, 0); err != nil {
			return err
		}

		names := make([]VarNameHDF5, len(event.Values))
		for i, value := range event.Values {
			names[i] = VarNameHDF5{name: convertToHdf5String(value.Name)}
		}
		if err := writeArrayToTable(w.NamesTable, &names, 0); err != nil {
			return err
		}

		w.nVars = len(event.Values)
		valuesArray, err := create2dArray(w.TrigGroup, "values", w.nVars, w.Compression)
		if err != nil {
			return err
		}
		w.ValuesArray = valuesArray
		w.FirstEvt = true
	}

	if len(event.Values) != w.nVars {
		return fmt.Errorf("event %d: %d values for %d declared variables", event.EventID, len(event.Values), w.nVars)
	}

	entry := EventDataHDF5{
		evt_number: int32(event.EventID),
		timestamp:  event.Timestamp,
	}
	if err := writeEntryToTable(w.EventTable, entry, w.EvtCounter); err != nil {
		return err
	}

	values := make([]float64, w.nVars)
	for i, value := range event.Values {
		values[i] = value.Value
	}
	if err := write2dArray(w.ValuesArray, &values, w.EvtCounter, w.nVars); err != nil {
		return err
	}

	w.EvtCounter++
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.NamesTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing names table: %w", err))
	}
	if w.ValuesArray != nil {
		if err := w.ValuesArray.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing values array: %w", err))
		}
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.TrigGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing trig group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
