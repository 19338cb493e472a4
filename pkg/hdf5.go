package pid

import (
	hdf5 "github.com/next-exp/hdf5-go"
)

const STRLEN = 20

// ParamHDF5 is one free-form parameter rendered as a key/value string
// pair for the params table.
type ParamHDF5 struct {
	param [STRLEN]byte
	value [STRLEN]byte
}

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) *hdf5.File {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(err)
	}
	return f
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(err)
	}
	return g
}

// create2dArray creates an extendable rows x cols float64 dataset. Maps
// are written once, but the extendable layout keeps the file compatible
// with readers of the other pipeline stages.
func create2dArray(group *hdf5.Group, name string, cols int) *hdf5.Dataset {
	dimsArray := []uint{0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(cols)}
	chunks := []uint{1, uint(cols)}
	dataset := createArray(group, name, dimsArray, maxDimsArray, chunks)
	return dataset
}

func createArray(group *hdf5.Group, name string, dims []uint, maxDims []uint, chunks []uint) *hdf5.Dataset {
	fileSpaceArray, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plistArray, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	plistArray.SetChunk(chunks)

	// Set compression level
	if configuration.UseBlosc {
		hdf5.ConfigureBloscFilter(plistArray, configuration.BloscAlgorithm.Code, configuration.CompressionLevel, configuration.BloscShuffle.Code)
	} else {
		plistArray.SetDeflate(configuration.CompressionLevel)
	}

	dsetArray, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, fileSpaceArray, plistArray)
	if err != nil {
		panic(err)
	}
	return dsetArray
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)

	// Set compression level
	if configuration.UseBlosc {
		hdf5.ConfigureBloscFilter(plist, configuration.BloscAlgorithm.Code, configuration.CompressionLevel, configuration.BloscShuffle.Code)
	} else {
		plist.SetDeflate(configuration.CompressionLevel)
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	newsize := []uint{length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{0}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

// write2dArray writes the whole rows x cols array in one go.
func write2dArray(dataset *hdf5.Dataset, data *[]float64, rows int, cols int) {
	newsize := []uint{uint(rows), uint(cols)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{0, 0}
	count := []uint{uint(rows), uint(cols)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
