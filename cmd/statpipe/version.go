package main

// Set via build flags.
var (
	Version   string
	GitCommit string
	BuildDate string
)
