package trigdet

import (
	"encoding/json"
	"os"
)

// Configuration is the process configuration of the decoding binary, read
// from a JSON file on top of the coded defaults.
type Configuration struct {
	MaxEvents        int    `json:"max_events"`
	Verbosity        int    `json:"verbosity"`
	FileIn           string `json:"file_in"`
	FileOut          string `json:"file_out"`
	ParamsFile       string `json:"params_file"`
	DetName          string `json:"det_name"`
	Apparatus        string `json:"apparatus"`
	NoDB             bool   `json:"no_db"`
	Skip             int    `json:"skip"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	WriteData        bool   `json:"write_data"`
	CompressionLevel int    `json:"compression_level"`
	MetricsAddr      string `json:"metrics_addr"`
}

func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.DetName = "trig"
	config.Apparatus = "HMS"
	config.NoDB = false
	config.Skip = 0
	config.Host = "hallcdb.jlab.org"
	config.User = "hcreader"
	config.Passwd = "readonly"
	config.DBName = "HALLC"
	config.WriteData = true
	config.CompressionLevel = 4
	config.MetricsAddr = ""

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
