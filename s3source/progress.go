package s3source

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// WithProgressLogger adds a progress logger that logs how many bytes have
// been fetched from S3 with the given interval.
//
// For example, if interval is `5*time.Second`, at most every 5 seconds the
// given logger will print `fetched X / Y so far` where X is the number of
// bytes fetched, Y the total object size, both in a human-friendly format
// (e.g. 5 KiB, 1 MiB, etc.). Y is an upper bound: a Source only ever
// fetches the chunks that Range calls touch.
func WithProgressLogger(logger *log.Logger, interval time.Duration) func(*Options) {
	return func(opts *Options) {
		opts.logger = &logLogger{
			logger: logger,
			rate:   &rate.Sometimes{Interval: interval},
		}
	}
}

type progressLogger interface {
	Log(n, size int64)
}

type logLogger struct {
	logger  *log.Logger
	rate    *rate.Sometimes
	fetched int64
}

func (l *logLogger) Log(n, size int64) {
	l.fetched += n
	l.rate.Do(func() {
		l.logger.Printf("fetched %s / %s so far", humanize.IBytes(uint64(l.fetched)), humanize.IBytes(uint64(size)))
	})
}
