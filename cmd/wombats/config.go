package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/zeebo/errs"
)

type Config struct {
	Producers        int    `json:"producers"`
	Consumers        int    `json:"consumers"`
	WombatsPerSource int    `json:"wombats_per_source"`
	BatchSize        int    `json:"batch_size"`
	QueueSize        int    `json:"queue_size"`
	FreelistCapacity int    `json:"freelist_capacity"`
	DedupWindow      string `json:"dedup_window"`
	Seed             int64  `json:"seed"`
}

func defaultConfig() Config {
	return Config{
		Producers:        2,
		Consumers:        4,
		WombatsPerSource: 1000,
		BatchSize:        16,
		QueueSize:        32,
		FreelistCapacity: 64,
		DedupWindow:      "5m",
		Seed:             1,
	}
}

func (c Config) dedupWindow() (time.Duration, error) {
	d, err := time.ParseDuration(c.DedupWindow)
	return d, errs.Wrap(err)
}

func (c Config) validate() error {
	switch {
	case c.Producers <= 0:
		return errs.New("producers:%d must be greater than zero", c.Producers)
	case c.Consumers <= 0:
		return errs.New("consumers:%d must be greater than zero", c.Consumers)
	case c.BatchSize <= 0:
		return errs.New("batch size:%d must be greater than zero", c.BatchSize)
	case c.FreelistCapacity <= 0:
		return errs.New("freelist capacity:%d must be greater than zero", c.FreelistCapacity)
	}

	_, err := c.dedupWindow()
	return err
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()

	cfgFile, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return Config{}, errs.Wrap(err)
	}
	defer cfgFile.Close()

	raw, err := io.ReadAll(cfgFile)
	if err != nil {
		return Config{}, errs.Wrap(err)
	}

	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, errs.Wrap(err)
	}

	return config, nil
}

// overrideFromFlags applies the flags that were set explicitly.
func overrideFromFlags(fset *flag.FlagSet, config *Config, flags Config) {
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "producers":
			config.Producers = flags.Producers
		case "consumers":
			config.Consumers = flags.Consumers
		case "wombats":
			config.WombatsPerSource = flags.WombatsPerSource
		case "batch":
			config.BatchSize = flags.BatchSize
		case "queue":
			config.QueueSize = flags.QueueSize
		case "freelist":
			config.FreelistCapacity = flags.FreelistCapacity
		case "dedup":
			config.DedupWindow = flags.DedupWindow
		case "seed":
			config.Seed = flags.Seed
		}
	})
}
