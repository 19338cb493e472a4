package pid

import (
	"encoding/json"
	"os"
)

type Configuration struct {
	Verbosity        int            `json:"verbosity"`
	RecoFile         string         `json:"reco_file"`
	PIDFile          string         `json:"pid_file"`
	OutFile          string         `json:"out_file"`
	Hdf5Out          string         `json:"hdf5_out"`
	PlotDir          string         `json:"plot_dir"`
	WriteData        bool           `json:"write_data"`
	NoDB             bool           `json:"no_db"`
	RunNumber        int            `json:"run_number"`
	Host             string         `json:"host"`
	User             string         `json:"user"`
	Passwd           string         `json:"pass"`
	DBName           string         `json:"dbname"`
	UseBlosc         bool           `json:"use_blosc"`
	CompressionLevel int            `json:"compression_level"`
	BloscAlgorithm   BloscAlgorithm `json:"blosc_algorithm"`
	BloscShuffle     BloscShuffle   `json:"blosc_shuffle"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// LoadConfiguration reads a JSON configuration file on top of the
// defaults. An empty filename returns the defaults unchanged.
func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values
	config.Verbosity = 0
	config.OutFile = "pid.json"
	config.WriteData = true
	config.NoDB = true
	config.RunNumber = 0
	config.Host = "db.pingu-exp.org"
	config.User = "pidreader"
	config.Passwd = "readonly"
	config.DBName = "PINGU"
	config.UseBlosc = false
	config.CompressionLevel = 4

	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}
