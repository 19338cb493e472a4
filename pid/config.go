package main

import (
	"fmt"

	pid "github.com/pingu-exp/pid_go/pkg"
)

func printConfiguration(config pid.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Reco events file: %s", config.RecoFile), "config")
	logger.Info(fmt.Sprintf("PID file: %s", config.PIDFile), "config")
	logger.Info(fmt.Sprintf("Output file: %s", config.OutFile), "config")
	logger.Info(fmt.Sprintf("HDF5 output: %s", config.Hdf5Out), "config")
	logger.Info(fmt.Sprintf("Plot directory: %s", config.PlotDir), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
