package trigdet

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type EventDataHDF5 struct {
	evt_number int32
	timestamp  uint64
}

type RunInfoHDF5 struct {
	run_number int32
}

type VarNameHDF5 struct {
	name [STRLEN]byte
}

const STRLEN = 32

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func create2dArray(group *hdf5.Group, name string, nColumns int, compressionLevel int) (*hdf5.Dataset, error) {
	dimsArray := []uint{0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(nColumns)}
	chunks := []uint{1, 32768}
	if nColumns < 32768 {
		chunks[1] = uint(nColumns)
	}

	file_spaceArray, err := hdf5.CreateSimpleDataspace(dimsArray, maxDimsArray)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plistArray, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	plistArray.SetChunk(chunks)
	plistArray.SetDeflate(compressionLevel)

	dsetArray, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, file_spaceArray, plistArray)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dsetArray, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(compressionLevel)

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, evtCounter int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, evtCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, evtCounter int) error {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}
	defer dataspace.Close()

	// extend
	eventsInFile := uint(evtCounter)
	newsize := []uint{eventsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{eventsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing table entry: %w", err)
	}
	return nil
}

func write2dArray(dataset *hdf5.Dataset, data *[]float64, evtCounter int, nColumns int) error {
	// extend
	newsize := []uint{uint(evtCounter) + 1, uint(nColumns)}
	dataset.Resize(newsize)
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(evtCounter), 0}
	count := []uint{1, uint(nColumns)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}
	defer dataspace.Close()

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing array row: %w", err)
	}
	return nil
}
