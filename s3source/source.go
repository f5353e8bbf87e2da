// Package s3source provides a scan.Source over an object in S3 using
// ranged GetObject calls, so that the structural records of a large archive
// can be read without downloading the archive.
package s3source

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nguyengg/zipview/scan"
	"golang.org/x/time/rate"
)

// chunkSize is the granularity of ranged GetObject calls. Requested ranges
// are widened to chunk boundaries so that the usual access pattern (the
// EOCD scan window followed by reads of the nearby central directory) hits
// the cache instead of S3.
const chunkSize = 64 * 1024

// DefaultCacheSize is the default number of chunks kept in memory.
const DefaultCacheSize = 32

// Client abstracts the S3 APIs that are needed to implement Source.
type Client interface {
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Options customises New.
type Options struct {
	// CtxFn returns a context.Context to be used with every GetObject or
	// HeadObject call.
	//
	// By default, context.Background is used.
	CtxFn func() context.Context

	// ModifyGetObjectInput can be used to modify the GetObject input
	// parameters such as adding ExpectedBucketOwner.
	//
	// Its return value will be used to make the GetObject call.
	ModifyGetObjectInput func(*s3.GetObjectInput) *s3.GetObjectInput

	// ModifyHeadObjectInput can be used to modify the HeadObject input
	// parameters such as adding ExpectedBucketOwner.
	//
	// Its return value will be used to make the HeadObject call. This
	// value is only used by New.
	ModifyHeadObjectInput func(*s3.HeadObjectInput) *s3.HeadObjectInput

	// MaxBytesInSecond limits the number of bytes fetched from S3 per
	// second.
	//
	// By default, there is no limit.
	MaxBytesInSecond int64

	// CacheSize is the number of 64-KiB chunks kept in an LRU cache.
	//
	// By default, DefaultCacheSize is used. Values less than 1 fall back
	// to the default.
	CacheSize int

	logger progressLogger
}

// Source reads ranges of a single S3 object.
//
// Source presents a read-only interface; the chunk cache behind it is
// guarded by a mutex so concurrent Range calls are safe.
type Source struct {
	client               Client
	bucket, key          string
	size                 int64
	ctxFn                func() context.Context
	modifyGetObjectInput func(*s3.GetObjectInput) *s3.GetObjectInput
	limiter              *rate.Limiter
	logger               progressLogger

	mu    sync.Mutex
	cache *lru.Cache[int64, []byte]
}

var _ scan.Source = (*Source)(nil)

// New returns a Source for the given bucket and key, using HeadObject to
// determine the object's size.
func New(client Client, bucket, key string, optFns ...func(*Options)) (*Source, error) {
	opts := newOptions(optFns...)

	headObjectOutput, err := client.HeadObject(opts.CtxFn(), opts.ModifyHeadObjectInput(&s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}))
	if err != nil {
		return nil, fmt.Errorf("determine object size error: %w", err)
	}

	return newSource(client, bucket, key, aws.ToInt64(headObjectOutput.ContentLength), opts), nil
}

// NewWithSize returns a Source for the given bucket, key, and known object
// size, skipping the HeadObject call.
func NewWithSize(client Client, bucket, key string, size int64, optFns ...func(*Options)) *Source {
	return newSource(client, bucket, key, size, newOptions(optFns...))
}

// NewDefault is New with a client created from the default AWS config.
func NewDefault(ctx context.Context, bucket, key string, optFns ...func(*Options)) (*Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load default AWS config error: %w", err)
	}

	return New(s3.NewFromConfig(cfg), bucket, key, optFns...)
}

func newOptions(optFns ...func(*Options)) *Options {
	opts := &Options{
		CtxFn: context.Background,
		ModifyGetObjectInput: func(input *s3.GetObjectInput) *s3.GetObjectInput {
			return input
		},
		ModifyHeadObjectInput: func(input *s3.HeadObjectInput) *s3.HeadObjectInput {
			return input
		},
		CacheSize: DefaultCacheSize,
	}
	for _, fn := range optFns {
		fn(opts)
	}

	return opts
}

func newSource(client Client, bucket, key string, size int64, opts *Options) *Source {
	var limiter *rate.Limiter
	if opts.MaxBytesInSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxBytesInSecond), chunkSize)
	}

	if opts.CacheSize < 1 {
		opts.CacheSize = DefaultCacheSize
	}

	// lru.New fails only on a non-positive size.
	cache, _ := lru.New[int64, []byte](opts.CacheSize)

	return &Source{
		client:               client,
		bucket:               bucket,
		key:                  key,
		size:                 size,
		ctxFn:                opts.CtxFn,
		modifyGetObjectInput: opts.ModifyGetObjectInput,
		limiter:              limiter,
		logger:               opts.logger,
		cache:                cache,
	}
}

// Size returns the total byte count of the object.
func (s *Source) Size() int64 {
	return s.size
}

// Range returns the bytes in [start, end) intersected with the object's
// actual bounds; a reversed or fully out-of-bounds range yields an empty
// slice without making any S3 call. Errors are GetObject failures only.
func (s *Source) Range(start, end int64) ([]byte, error) {
	start, end = scan.ClampRange(start, end, s.size)
	if start == end {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := make([]byte, 0, end-start)
	for off := start - start%chunkSize; off < end; off += chunkSize {
		c, err := s.chunkLocked(off)
		if err != nil {
			return nil, err
		}

		lo := max(start-off, 0)
		hi := min(end-off, int64(len(c)))
		if lo >= hi {
			break
		}

		p = append(p, c[lo:hi]...)
	}

	return p, nil
}

// chunkLocked returns the chunk starting at off, fetching and caching it if
// necessary. The caller must hold s.mu.
func (s *Source) chunkLocked(off int64) ([]byte, error) {
	if c, ok := s.cache.Get(off); ok {
		return c, nil
	}

	n := min(int64(chunkSize), s.size-off)

	if s.limiter != nil {
		if err := s.limiter.WaitN(s.ctxFn(), int(n)); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	getObjectOutput, err := s.client.GetObject(s.ctxFn(), s.modifyGetObjectInput(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+n-1)),
	}))
	if err != nil {
		return nil, fmt.Errorf("get range bytes=%d-%d error: %w", off, off+n-1, err)
	}

	c, err := io.ReadAll(getObjectOutput.Body)
	if _ = getObjectOutput.Body.Close(); err != nil {
		return nil, fmt.Errorf("read range bytes=%d-%d error: %w", off, off+n-1, err)
	}

	if s.logger != nil {
		s.logger.Log(int64(len(c)), s.size)
	}

	s.cache.Add(off, c)
	return c, nil
}
