// Package config loads named generator profiles from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/zxfonline/ultrafast/log"
	"github.com/zxfonline/ultrafast/random"
)

const (
	SeedNarrow = "narrow"
	SeedWide   = "wide"
)

var (
	ErrProfileNotFound = errors.New("config: profile not found")
	ErrWideWithoutSeed = errors.New("config: seed_mode wide needs a seed")
)

// Profile describes one generator. Unset constants fall back to the defaults
// truncated to Width.
type Profile struct {
	Name     string   `yaml:"name"`
	Width    int      `yaml:"width"`
	V1       *uint64  `yaml:"v1,omitempty"`
	V2       *uint64  `yaml:"v2,omitempty"`
	V3       *uint64  `yaml:"v3,omitempty"`
	Seed     *uint64  `yaml:"seed,omitempty"`
	SeedMode string   `yaml:"seed_mode,omitempty"`
	Entropy  []uint64 `yaml:"entropy,omitempty"` // p1,p2,p3 xored into c,b,a
}

type Config struct {
	Profiles []*Profile `yaml:"profiles"`
}

func Load(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	seen := make(map[string]bool, len(cfg.Profiles))
	for i, p := range cfg.Profiles {
		if p == nil {
			return nil, fmt.Errorf("config: profile #%d is empty", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("config: duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func LoadFile(fname string) (*Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	log.Infof("Load generator config: %s, %d profiles.", fname, len(cfg.Profiles))
	return cfg, nil
}

func (c *Config) WriteFile(fname string, perm os.FileMode) error {
	bs, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, bs, perm)
}

func (c *Config) Profile(name string) (*Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Build looks up a profile by name and builds its generator.
func (c *Config) Build(name string) (random.Generator, error) {
	p, ok := c.Profile(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	return p.Build()
}

// Constants returns v1, v2 and v3 with defaults applied.
func (p *Profile) Constants() (v1, v2, v3 uint64, err error) {
	v1, v2, v3, err = random.DefaultConstants(p.Width)
	if err != nil {
		return
	}
	if p.V1 != nil {
		v1 = *p.V1
	}
	if p.V2 != nil {
		v2 = *p.V2
	}
	if p.V3 != nil {
		v3 = *p.V3
	}
	return
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("config: profile without name")
	}
	_, err := p.Build()
	return err
}

func (p *Profile) check() error {
	switch p.SeedMode {
	case "", SeedNarrow:
	case SeedWide:
		if p.Seed == nil {
			return ErrWideWithoutSeed
		}
	default:
		return fmt.Errorf("unknown seed_mode %q", p.SeedMode)
	}
	if len(p.Entropy) > 3 {
		return fmt.Errorf("at most 3 entropy values, got %d", len(p.Entropy))
	}
	return nil
}

func (p *Profile) Build() (random.Generator, error) {
	var g random.Generator
	err := p.check()
	if err != nil {
		return nil, fmt.Errorf("config: profile %q: %w", p.Name, err)
	}
	switch p.Width {
	case 8:
		g, err = build[uint8](p)
	case 16:
		g, err = build[uint16](p)
	case 32:
		g, err = build[uint32](p)
	case 64:
		g, err = build[uint64](p)
	default:
		err = fmt.Errorf("width %d: %w", p.Width, random.ErrInvalidWidth)
	}
	if err != nil {
		return nil, fmt.Errorf("config: profile %q: %w", p.Name, err)
	}
	return g, nil
}

func build[T random.Unsigned](p *Profile) (*random.UltraFast[T], error) {
	v1, v2, v3, err := p.Constants()
	if err != nil {
		return nil, err
	}
	params, err := random.NewParams[T](v1, v2, v3)
	if err != nil {
		return nil, err
	}
	var g *random.UltraFast[T]
	switch {
	case p.Seed == nil:
		g = random.NewUltraFast(params)
	case p.SeedMode == SeedWide:
		g = random.NewUltraFastWide(params, *p.Seed)
	default:
		x, err := narrow[T](*p.Seed)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		g = random.NewUltraFastSeed(params, x)
	}
	var opts [3]random.Optional[T]
	for i, v := range p.Entropy {
		x, err := narrow[T](v)
		if err != nil {
			return nil, fmt.Errorf("entropy[%d]: %w", i, err)
		}
		opts[i] = random.Some(x)
	}
	g.AddEntropy(opts[0], opts[1], opts[2])
	return g, nil
}

func narrow[T random.Unsigned](v uint64) (T, error) {
	if v > uint64(^T(0)) {
		return 0, fmt.Errorf("%d: %w", v, random.ErrNotRepresentable)
	}
	return T(v), nil
}
