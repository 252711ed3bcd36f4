package main

import (
	"os"

	"github.com/soundprediction/episodegrid/cmd/episodegrid"
)

func main() {
	if err := episodegrid.Execute(); err != nil {
		os.Exit(1)
	}
}
