package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	trigdet "github.com/next-exp/trigdet_go/pkg"
)

var configuration trigdet.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = trigdet.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	trigdet.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	registry := prometheus.NewRegistry()
	metrics := trigdet.NewMetrics(registry)
	if configuration.MetricsAddr != "" {
		serveMetrics(configuration.MetricsAddr, registry)
	}

	params, err := trigdet.LoadParams(configuration.ParamsFile)
	if err != nil {
		logger.Error(err.Error())
		return
	}

	det := trigdet.NewTrigDet(configuration.DetName, configuration.Apparatus,
		trigdet.WithVerbosity(configuration.Verbosity),
		trigdet.WithMetrics(metrics))
	if err := det.Init(params); err != nil {
		message := fmt.Errorf("error initializing detector: %w", err)
		logger.Error(message.Error())
		return
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	evtCount, runNumber := countEvents(file)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d, run %d", evtCount, runNumber)
		logger.Info(message, "main")
	}

	detMap, err := loadDetectorMap(det, params, runNumber)
	if err != nil {
		message := fmt.Errorf("error loading detector map for %s: %w", det.EngineID(), err)
		logger.Error(message.Error())
		return
	}

	var writer *trigdet.Writer
	if configuration.WriteData {
		writer, err = trigdet.NewWriter(configuration.FileOut, configuration.CompressionLevel)
		if err != nil {
			logger.Error(err.Error())
			return
		}
		defer writer.Close()
	}

	fileReader := NewFileReader(file)
	start := time.Now()
	evtsProcessed := 0
	evtsDiscarded := 0

	for {
		header, eventData, err := fileReader.getNextEvent()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}

		hits, err := trigdet.ReadEvent(eventData, header, detMap)
		if err != nil {
			message := fmt.Errorf("error reading hits of event %d: %w", header.EventId, err)
			logger.Error(message.Error())
			evtsDiscarded++
			continue
		}

		// A decode failure discards the event but never stops the run loop.
		det.Clear()
		if _, err := det.Decode(hits); err != nil {
			message := fmt.Errorf("error decoding event %d: %w", header.EventId, err)
			logger.Error(message.Error())
			evtsDiscarded++
			continue
		}

		if configuration.WriteData {
			record := &trigdet.EventRecord{
				EventID:   header.EventId,
				RunNumber: header.EventRunNb,
				Timestamp: header.EventTimestamp,
				Values:    det.Variables().Snapshot(),
			}
			if err := writer.WriteEvent(record); err != nil {
				message := fmt.Errorf("error writing event %d: %w", header.EventId, err)
				logger.Error(message.Error())
				return
			}
		}
		evtsProcessed++
	}

	duration := time.Since(start)
	message := fmt.Sprintf("Processed %d events (%d discarded) in %d ms",
		evtsProcessed, evtsDiscarded, duration.Milliseconds())
	logger.Info(message, "main")
}

// loadDetectorMap reads the channel map from the run database, or from the
// parameter file when running in no-DB mode.
func loadDetectorMap(det *trigdet.TrigDet, params *koanf.Koanf, runNumber int) (trigdet.DetectorMap, error) {
	if configuration.NoDB {
		return trigdet.DetectorMapFromParams(params, det.KwPrefix())
	}

	dbConn, err := trigdet.ConnectToDatabase(configuration.User, configuration.Passwd,
		configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer dbConn.Close()

	return trigdet.LoadDetectorMap(dbConn, det.EngineID(), runNumber)
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(err.Error())
		}
	}()
}

func printConfiguration(config trigdet.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Params file: %s", config.ParamsFile), "config")
	logger.Info(fmt.Sprintf("Detector: %s", config.DetName), "config")
	logger.Info(fmt.Sprintf("Apparatus: %s", config.Apparatus), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Metrics address: %s", config.MetricsAddr), "config")
}
