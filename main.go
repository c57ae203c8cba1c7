package main

import (
	"flag"
	"fmt"
	"os"

	"go-piclist/config"
	"go-piclist/pkg/pipeline"
	"go-piclist/util/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	frames := flag.Int("frames", 120, "number of frames to push through the pipeline")
	flag.Parse()

	configs, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.SetLevel(configs.LogLevel); err != nil {
		fatalf("invalid log level '%v': %v\n", configs.LogLevel, err)
	}

	p, err := pipeline.New(configs.PipelineConfig, configs.ListConfig.Verify)
	if err != nil {
		fatal(err)
	}

	for i := 0; i < *frames; i++ {
		packets, err := p.Push(p.Frame(int32(i)))
		if err != nil {
			fatal(err)
		}
		printPackets(packets)
	}

	packets, err := p.Flush()
	if err != nil {
		fatal(err)
	}
	printPackets(packets)

	stats := p.Stats()
	logger.L.WithFields(logrus.Fields{
		"frames": *frames,
		"free":   stats.Free,
	}).Info("pipeline flushed")
}

func printPackets(packets []pipeline.Packet) {
	for _, pkt := range packets {
		logger.L.WithFields(logrus.Fields{
			"order": pkt.EncodeOrder,
			"poc":   pkt.POC,
			"type":  pkt.Type,
			"refs":  pkt.Refs,
		}).Info("packet")
	}
}

func fatal(val interface{}) {
	fmt.Println(val)
	os.Exit(1)
}

func fatalf(format string, values ...interface{}) {
	fmt.Printf(format, values...)
	os.Exit(1)
}
