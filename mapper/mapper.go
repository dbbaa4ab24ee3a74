package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"field-mapper/internal/cache"
	"field-mapper/internal/convert"
	"field-mapper/internal/diagnostic"
	"field-mapper/internal/introspect"
	"field-mapper/internal/resolve"
	"field-mapper/options"
	"field-mapper/profile"
)

// Mapper owns the introspection and converter caches. It is safe for
// concurrent use. Use Default for the process-wide instance or New in tests.
type Mapper struct {
	introspector *introspect.Introspector
	converters   *cache.Cache
	sink         *diagnostic.Sink
	profile      *profile.Profile
	defaults     options.Flag
	logger       *zap.Logger
}

type config struct {
	logger   *zap.Logger
	meter    metric.Meter
	profile  *profile.Profile
	defaults options.Flag
}

// Option configures a Mapper.
type Option func(*config)

// WithLogger mirrors diagnostics and converter builds to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMeter exports cache counters through meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithProfile applies the profile's default flags and ignore lists.
func WithProfile(p *profile.Profile) Option {
	return func(c *config) {
		c.profile = p
	}
}

// WithDefaults adds flags to every mapping call.
func WithDefaults(flags ...options.Flag) Option {
	return func(c *config) {
		c.defaults = c.defaults.With(options.Merge(flags...))
	}
}

// New creates a Mapper with empty caches.
func New(opts ...Option) *Mapper {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	m := &Mapper{
		introspector: introspect.New(),
		sink:         diagnostic.NewSink(cfg.logger),
		profile:      cfg.profile,
		defaults:     cfg.defaults.With(cfg.profile.Flags()),
		logger:       cfg.logger,
	}

	cacheOpts := []cache.Option{
		cache.WithLogger(cfg.logger),
		cache.WithOnStore(func(_ cache.Key, conv *convert.Converter) {
			m.sink.Record(conv.Diagnostics())
		}),
	}
	if cfg.meter != nil {
		cacheOpts = append(cacheOpts, cache.WithMeter(cfg.meter))
	}

	m.converters = cache.New(m.build, cacheOpts...)

	return m
}

var (
	defaultMapper atomic.Pointer[Mapper]
	defaultOnce   sync.Once
)

// Default returns the process-wide Mapper, creating it on first use.
func Default() *Mapper {
	defaultOnce.Do(func() {
		defaultMapper.CompareAndSwap(nil, New())
	})

	return defaultMapper.Load()
}

// SetDefault replaces the process-wide Mapper. A nil m installs a fresh one.
func SetDefault(m *Mapper) {
	if m == nil {
		m = New()
	}

	defaultOnce.Do(func() {})
	defaultMapper.Store(m)
}

func (m *Mapper) build(key cache.Key) (*convert.Converter, error) {
	plan := resolve.Resolve(
		m.introspector.Describe(key.Source),
		m.introspector.Describe(key.Target),
		key.Flags,
		m.profile.Ignored(key.Source, key.Target),
	)

	return convert.Build(plan)
}

// converter returns the cached converter for the pair. flags must already be
// normalized for the converter shape.
func (m *Mapper) converter(src, dst reflect.Type, flags options.Flag) (*convert.Converter, error) {
	conv, err := m.converters.GetOrBuild(cache.Key{Source: src, Target: dst, Flags: flags})
	if err != nil {
		var field string

		var ce *convert.ConstructionError
		if errors.As(err, &ce) {
			field = ce.Field
		}

		m.sink.Error(diagnostic.CodeBuildFailed, err.Error(), src.String()+" -> "+dst.String(), field)

		return nil, err
	}

	return conv, nil
}

// createFlags normalizes flags for create mode. Skipping nil values cannot
// change a freshly allocated target, so it does not split the cache.
func (m *Mapper) createFlags(flags []options.Flag) options.Flag {
	return options.Merge(flags...).With(m.defaults).Without(options.CopyInto | options.SkipNull)
}

func (m *Mapper) copyFlags(flags []options.Flag) options.Flag {
	return options.Merge(flags...).With(m.defaults).With(options.CopyInto)
}

// MapValue creates a new value of type target (a struct type) from src and
// returns a pointer to it.
func (m *Mapper) MapValue(src any, target reflect.Type, flags ...options.Flag) (reflect.Value, error) {
	sv, err := sourceValue(src)
	if err != nil {
		return reflect.Value{}, err
	}

	if target == nil || target.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target %v", ErrNotStruct, target)
	}

	conv, err := m.converter(sv.Type(), target, m.createFlags(flags))
	if err != nil {
		return reflect.Value{}, err
	}

	return conv.New(sv)
}

// CopyInto copies the fields of src into the struct dst points to.
// Unmapped target fields keep their values. On error dst may be partially updated.
func (m *Mapper) CopyInto(src, dst any, flags ...options.Flag) error {
	return m.copyInto(src, dst, m.copyFlags(flags))
}

// CopyIntoIfNotNull is CopyInto that leaves a target field alone whenever the
// source value is nil.
func (m *Mapper) CopyIntoIfNotNull(src, dst any, flags ...options.Flag) error {
	return m.copyInto(src, dst, m.copyFlags(flags).With(options.SkipNull))
}

func (m *Mapper) copyInto(src, dst any, flags options.Flag) error {
	sv, err := sourceValue(src)
	if err != nil {
		return err
	}

	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrTargetNotPointer, dst)
	}

	conv, err := m.converter(sv.Type(), dv.Elem().Type(), flags)
	if err != nil {
		return err
	}

	return conv.Into(sv, dv)
}

// Explain returns the plan used between two struct types under flags.
// Pointer types are described by their element type. SkipNull implies CopyInto.
func (m *Mapper) Explain(src, dst reflect.Type, flags ...options.Flag) (*resolve.Plan, error) {
	conv, err := m.explain(src, dst, flags)
	if err != nil {
		return nil, err
	}

	return conv.Plan(), nil
}

// Validate reports, as one joined error, every binding between src and dst
// that can never be copied under flags.
func (m *Mapper) Validate(src, dst reflect.Type, flags ...options.Flag) error {
	conv, err := m.explain(src, dst, flags)
	if err != nil {
		return err
	}

	diags := conv.Diagnostics()

	return diags.Error()
}

func (m *Mapper) explain(src, dst reflect.Type, flags []options.Flag) (*convert.Converter, error) {
	src, dst = deref(src), deref(dst)
	if src == nil || src.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: source %v", ErrNotStruct, src)
	}

	if dst == nil || dst.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: target %v", ErrNotStruct, dst)
	}

	f := m.createFlags(flags)
	if requested := options.Merge(flags...); requested.Has(options.CopyInto) || requested.Has(options.SkipNull) {
		f = m.copyFlags(flags)
	}

	return m.converter(src, dst, f)
}

// Describe returns the field descriptor of t as seen by the mapper.
func (m *Mapper) Describe(t reflect.Type) *introspect.TypeDescriptor {
	return m.introspector.Describe(t)
}

// Diagnostics returns every warning and note recorded so far.
func (m *Mapper) Diagnostics() diagnostic.Diagnostics {
	return m.sink.Snapshot()
}

// Stats returns the converter cache counters.
func (m *Mapper) Stats() cache.Stats {
	return m.converters.Stats()
}

// Converters returns the number of cached converters.
func (m *Mapper) Converters() int {
	return m.converters.Len()
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

func sourceValue(src any) (reflect.Value, error) {
	if src == nil {
		return reflect.Value{}, ErrNilSource
	}

	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, ErrNilSource
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: source %s", ErrNotStruct, v.Type())
	}

	return v, nil
}
