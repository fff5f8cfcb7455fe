package mesh

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/osuushi/quadmesh/geom"
	"github.com/pkg/errors"
)

type Algorithm string

const (
	Ruppert Algorithm = "ruppert"
	Chew    Algorithm = "chew"
)

// DefaultQualityRatio bounds the smallest angle at about 34 degrees.
const DefaultQualityRatio = 0.895

const DefaultMaxIterations = 10000

// Options control refinement. A triangle is bad when its circumradius to
// shortest edge ratio exceeds the bound. Once no triangle is bad, and MaxArea
// is positive, the largest triangle over MaxArea is refined instead, so the
// ratio bound always takes precedence over the area bound.
type Options struct {
	Algorithm    Algorithm `toml:"algorithm"`
	QualityRatio float64   `toml:"quality_ratio"`
	// Minimum angle in degrees. Overrides QualityRatio when positive.
	MinAngle      float64 `toml:"min_angle"`
	MaxArea       float64 `toml:"max_area"`
	MaxIterations int     `toml:"max_iterations"`
	// Use off-centers instead of circumcenters with Chew's algorithm.
	OffCenter bool `toml:"off_center"`
}

var ErrInvalidOptions = errors.New("invalid options")

func DefaultOptions() Options {
	return Options{
		Algorithm:     Ruppert,
		QualityRatio:  DefaultQualityRatio,
		MaxIterations: DefaultMaxIterations,
	}
}

// Ratio is the effective quality bound.
func (o Options) Ratio() float64 {
	if o.MinAngle > 0 {
		return geom.RatioForMinAngle(o.MinAngle)
	}
	return o.QualityRatio
}

func (o Options) Validate() error {
	switch o.Algorithm {
	case Ruppert, Chew:
	default:
		return errors.Wrapf(ErrInvalidOptions, "unknown algorithm %q", o.Algorithm)
	}
	if o.MinAngle < 0 || o.MinAngle >= 60 {
		return errors.Wrapf(ErrInvalidOptions, "minimum angle %g is out of range", o.MinAngle)
	}
	if o.Ratio() <= 0 {
		return errors.Wrapf(ErrInvalidOptions, "quality ratio must be positive")
	}
	if o.MaxArea < 0 {
		return errors.Wrapf(ErrInvalidOptions, "max area %g is negative", o.MaxArea)
	}
	if o.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalidOptions, "max iterations %d is negative", o.MaxIterations)
	}
	return nil
}

// DecodeOptions reads TOML options on top of the defaults.
func DecodeOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if _, err := toml.NewDecoder(r).Decode(&opts); err != nil {
		return opts, errors.Wrap(err, "decoding options")
	}
	return opts, opts.Validate()
}

func LoadOptions(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultOptions(), err
	}
	defer f.Close()
	return DecodeOptions(f)
}
