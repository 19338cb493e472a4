package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	pid "github.com/pingu-exp/pid_go/pkg"
)

var configuration pid.Configuration

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

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] RECOEVENTS WEIGHTFILE

Takes a reco event rate file and a PID parameterization file and
produces the reconstructed templates of tracks and cascades.

RECOEVENTS is a JSON file with one record per flavour:
  {"nue_cc": {"ebins": [...], "czbins": [...], "map": [[...]]},
   "numu_cc": {...}, "nutau_cc": {...}, "nuall_nc": {...},
   "params": {...}}
WEIGHTFILE is a JSON file with the trck/cscd weights per flavour.

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func fatal(err error) {
	logger.Error(err.Error())
	os.Exit(1)
}

func main() {
	var (
		configFilename string
		outFile        string
		hdf5Out        string
		plotDir        string
		verbosity      int
	)
	flag.StringVar(&configFilename, "config", "", "configuration file path")
	flag.StringVar(&outFile, "outfile", "", "file to store the output (default pid.json)")
	flag.StringVar(&outFile, "o", "", "file to store the output (shorthand)")
	flag.StringVar(&hdf5Out, "hdf5", "", "also write the output to this HDF5 file")
	flag.StringVar(&plotDir, "plot", "", "also save trck/cscd heat maps to this directory")
	flag.IntVar(&verbosity, "v", 0, "verbosity level")
	flag.Usage = usage
	flag.Parse()

	var err error
	configuration, err = pid.LoadConfiguration(configFilename)
	if err != nil {
		fatal(fmt.Errorf("Error reading configuration file: %w", err))
	}

	// Command line overrides the configuration file
	if flag.NArg() > 0 {
		configuration.RecoFile = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		configuration.PIDFile = flag.Arg(1)
	}
	if outFile != "" {
		configuration.OutFile = outFile
	}
	if hdf5Out != "" {
		configuration.Hdf5Out = hdf5Out
	}
	if plotDir != "" {
		configuration.PlotDir = plotDir
	}
	if verbosity > 0 {
		configuration.Verbosity = verbosity
	}

	if configuration.RecoFile == "" {
		usage()
		os.Exit(2)
	}
	if configuration.PIDFile == "" && configuration.NoDB {
		usage()
		os.Exit(2)
	}

	pid.SetConfiguration(configuration)
	pid.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	recoEvents, err := pid.LoadFlavorMapSet(configuration.RecoFile)
	if err != nil {
		fatal(fmt.Errorf("Error reading reco event maps: %w", err))
	}

	binning, err := pid.CheckBinning(recoEvents)
	if err != nil {
		fatal(fmt.Errorf("Error checking binning: %w", err))
	}

	var table pid.PIDTable
	if configuration.NoDB {
		table, err = pid.LoadPIDTable(configuration.PIDFile)
		if err != nil {
			fatal(fmt.Errorf("Error reading PID table: %w", err))
		}
	} else {
		dbConn, err := pid.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			fatal(fmt.Errorf("Error connecting to database: %w", err))
		}
		defer dbConn.Close()
		table, err = pid.GetPIDTableFromDB(dbConn, configuration.RunNumber)
		if err != nil {
			fatal(fmt.Errorf("Error reading PID table from database: %w", err))
		}
	}

	service, err := pid.NewPIDService(table, binning)
	if err != nil {
		fatal(fmt.Errorf("Error initializing PID service: %w", err))
	}

	classified, err := pid.GetPIDMaps(recoEvents, service)
	if err != nil {
		fatal(fmt.Errorf("Error applying PID: %w", err))
	}

	if !configuration.WriteData {
		return
	}

	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Saving output to: %s", configuration.OutFile)
		logger.Info(message, "main")
	}
	if err := classified.ToJSON(configuration.OutFile); err != nil {
		fatal(fmt.Errorf("Error writing output: %w", err))
	}

	if configuration.Hdf5Out != "" {
		writer := pid.NewWriter(configuration.Hdf5Out)
		writer.WriteClassifiedMaps(&classified)
		if err := writer.Close(); err != nil {
			fatal(fmt.Errorf("Error closing HDF5 output: %w", err))
		}
	}

	if configuration.PlotDir != "" {
		if err := os.MkdirAll(configuration.PlotDir, 0755); err != nil {
			fatal(fmt.Errorf("Error creating plot directory: %w", err))
		}
		if err := pid.SaveMapPNG(classified.Trck, "trck", filepath.Join(configuration.PlotDir, "trck.png")); err != nil {
			fatal(err)
		}
		if err := pid.SaveMapPNG(classified.Cscd, "cscd", filepath.Join(configuration.PlotDir, "cscd.png")); err != nil {
			fatal(err)
		}
	}
}
