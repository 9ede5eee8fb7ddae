package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/erroror/internal/freelist"
	"github.com/Philanthropists/erroror/internal/logging"
	"github.com/Philanthropists/erroror/internal/queue/impl/mutex"
	"github.com/Philanthropists/erroror/internal/wombat"
	"github.com/Philanthropists/erroror/pkg/erroror"
	"github.com/Philanthropists/erroror/pkg/pipe"
)

const configFile = "wombats.json"

var GitCommit string

type Options struct {
	ConfigPath string
	Debug      bool
	Timeout    uint
	Flags      Config
}

func getOptions(fset *flag.FlagSet, args []string) (Options, error) {
	var options Options

	fset.StringVar(&options.ConfigPath, "config", configFile, "path to the json config file")
	fset.BoolVar(&options.Debug, "debug", false, "output debug logs")
	fset.UintVar(&options.Timeout, "timeout", 0, "seconds before the run is canceled")
	fset.IntVar(&options.Flags.Producers, "producers", 0, "number of producers")
	fset.IntVar(&options.Flags.Consumers, "consumers", 0, "number of concurrent consumers")
	fset.IntVar(&options.Flags.WombatsPerSource, "wombats", 0, "wombats generated per producer")
	fset.IntVar(&options.Flags.BatchSize, "batch", 0, "wombats per batch")
	fset.IntVar(&options.Flags.QueueSize, "queue", 0, "queue capacity, zero for unbounded")
	fset.IntVar(&options.Flags.FreelistCapacity, "freelist", 0, "batches the freelist may hand out")
	fset.StringVar(&options.Flags.DedupWindow, "dedup", "", "window in which repeated batch ids are dropped")
	fset.Int64Var(&options.Flags.Seed, "seed", 0, "generator seed")

	return options, fset.Parse(args)
}

func main() {
	fset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options, _ := getOptions(fset, os.Args[1:])

	log := logging.Configure(options.Debug)
	defer func() { _ = log.Sync() }()

	version := "dev"
	if len(GitCommit) >= 3 {
		version = GitCommit[:3]
	}
	log = log.With(logging.String("version", version))

	config, err := loadConfig(options.ConfigPath)
	if err != nil {
		log.Fatal("failed to load config", logging.Error(err))
	}
	overrideFromFlags(fset, &config, options.Flags)

	if err := config.validate(); err != nil {
		log.Fatal("invalid config", logging.Error(err))
	}

	ctx := log.GetContext(context.Background())
	if options.Timeout != 0 {
		nctx, cancel := context.WithTimeout(ctx, time.Duration(options.Timeout)*time.Second)
		defer cancel()
		ctx = nctx
	}

	stats, err := run(ctx, config)
	if err != nil {
		log.Fatal("run failed", logging.Error(err))
	}

	log.Info("run finished", logging.Int("processed", stats.Processed))
	for code, n := range stats.Failures {
		log.Warn("failed batches", logging.Code(code), logging.Int("count", n))
	}
}

func run(ctx context.Context, config Config) (wombat.Stats, error) {
	log := logging.FromContext(ctx)

	window, err := config.dedupWindow()
	if err != nil {
		return wombat.Stats{}, err
	}

	fl, err := freelist.New[wombat.Wombat](config.FreelistCapacity, config.BatchSize)
	if err != nil {
		return wombat.Stats{}, err
	}

	q := mutex.CreateQueue[wombat.Batch](config.QueueSize)

	producers := make([]<-chan erroror.ErrorOr[int], 0, config.Producers)
	for i := 0; i < config.Producers; i++ {
		p := &wombat.Producer{
			ID:       i,
			Queue:    q,
			Freelist: fl,
			Source:   wombat.NewGenerator(config.Seed+int64(i), config.WombatsPerSource),
			Log:      log,
		}
		producers = append(producers, pipe.AwaitResult(ctx.Done(), func() (int, error) {
			return p.Run(ctx)
		}))
	}

	produced := pipe.FanIn(ctx.Done(), producers...)
	go func() {
		defer q.Close()

		for res := range produced {
			if !res.OK() {
				log.Error("producer stopped", logging.Code(res.Code()))
				continue
			}
			log.Debug("producer finished", logging.Int("batches", res.MustValue()))
		}
	}()

	consumer := &wombat.Consumer{
		Queue:       q,
		DedupWindow: window,
		Log:         log,
	}

	batches := pipe.OnError(ctx.Done(), wombat.Drain(ctx, q), func(c erroror.Code) {
		log.Error("could not pop batch", logging.Code(c))
	})

	summaries := pipe.ConcurrentMap(ctx.Done(), config.Consumers, batches, func(b wombat.Batch) erroror.ErrorOr[wombat.Summary] {
		return consumer.Handle(ctx, b)
	})

	toStats, toLog := pipe.Tee(ctx.Done(), summaries)

	logged := make(chan struct{})
	go func() {
		defer close(logged)

		for res := range toLog {
			if !res.OK() {
				log.Debug("batch rejected", logging.Code(res.Code()))
				continue
			}

			s := res.MustValue()
			log.Debug("processed batch",
				logging.String("batch", s.BatchID),
				logging.Int("count", s.Count),
				logging.Float("weight", s.TotalWeight),
				logging.String("heaviest", s.Heaviest),
			)
		}
	}()

	var stats wombat.Stats
	for res := range toStats {
		stats.Record(res)
	}
	<-logged

	if err := ctx.Err(); err != nil {
		return stats, errs.Wrap(err)
	}

	return stats, nil
}
