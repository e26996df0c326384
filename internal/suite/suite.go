// Package suite checks batches of arguments described in YAML files.
package suite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/tableaux"
	"github.com/gnoswap-labs/tableaux/internal/logic"
)

// Argument is one entry of a suite.
type Argument struct {
	Name      string `yaml:"name,omitempty" json:"name,omitempty"`
	Statement string `yaml:"statement" json:"statement"`
	// System overrides the suite's system.
	System string `yaml:"system,omitempty" json:"system,omitempty"`
	// Axioms selects a normal modal logic directly and wins over System.
	Axioms *logic.Axioms `yaml:"axioms,omitempty" json:"axioms,omitempty"`
	// Holds is the expected verdict. Arguments without one always pass
	// unless checking them fails.
	Holds *bool `yaml:"holds,omitempty" json:"holds,omitempty"`
}

// Label is the argument's name, or its statement when it has none.
func (a Argument) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Statement
}

type Suite struct {
	Name      string     `yaml:"name"`
	System    string     `yaml:"system,omitempty"`
	Arguments []Argument `yaml:"arguments"`

	// Path is the file the suite was loaded from.
	Path string `yaml:"-"`
}

// Load reads and parses the suite at path.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

func Parse(data []byte) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i, a := range s.Arguments {
		if strings.TrimSpace(a.Statement) == "" {
			return nil, fmt.Errorf("argument %d (%s): empty statement", i+1, a.Label())
		}
	}
	return &s, nil
}

// SystemOf resolves the system a is checked in.
func (s *Suite) SystemOf(a Argument) (tableaux.System, error) {
	if a.Axioms != nil {
		return tableaux.Normal(*a.Axioms), nil
	}
	name := a.System
	if name == "" {
		name = s.System
	}
	if name == "" {
		return tableaux.Classical, nil
	}
	return tableaux.ParseSystem(name)
}

// Outcome is the result of checking one argument.
type Outcome struct {
	Argument Argument         `json:"argument"`
	Report   *tableaux.Report `json:"report,omitempty"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
	Pass     bool             `json:"pass"`
}

type Summary struct {
	Suite    string    `json:"suite"`
	Outcomes []Outcome `json:"outcomes"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
}

func (s Summary) OK() bool {
	return s.Failed == 0
}

type RunOptions struct {
	// Prove is passed to every proof.
	Prove []tableaux.Option
	// Progress receives a progress bar when set.
	Progress io.Writer
	// Workers bounds the proofs run at once. Defaults to runtime.NumCPU().
	Workers int
	// Cache, when set, supplies reports of arguments proved before and
	// keeps the new ones. It is saved once the suite has been checked.
	Cache  *Cache
	Logger *zap.Logger
}

// Run checks every argument of the suite. Arguments are independent and are
// checked in parallel; the outcomes keep the suite's order. The returned
// error is only set when ctx is cancelled.
func (s *Suite) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(s.Arguments),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(s.Name),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	outcomes := make([]Outcome, len(s.Arguments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range s.Arguments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.check(a, opts, logger)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(opts.Progress)
	}
	if opts.Cache != nil {
		if err := opts.Cache.Save(); err != nil {
			logger.Warn("Error saving proof cache", zap.Error(err))
		}
	}

	sum := Summary{Suite: s.Name, Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Pass {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	logger.Info("suite checked",
		zap.String("suite", s.Name),
		zap.Int("passed", sum.Passed),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

func (s *Suite) check(a Argument, opts RunOptions, logger *zap.Logger) Outcome {
	out := Outcome{Argument: a}
	sys, err := s.SystemOf(a)
	if err == nil {
		out.Report, err = s.prove(sys, a.Statement, opts, logger)
	}
	if err != nil {
		logger.Error("Error checking argument", zap.String("argument", a.Label()), zap.Error(err))
		out.Err = err
		out.Error = err.Error()
		return out
	}
	out.Pass = a.Holds == nil || *a.Holds == out.Report.Holds
	return out
}

func (s *Suite) prove(sys tableaux.System, statement string, opts RunOptions, logger *zap.Logger) (*tableaux.Report, error) {
	if opts.Cache != nil {
		if r, ok := opts.Cache.Get(sys, statement, opts.Prove); ok {
			logger.Debug("cache hit", zap.String("statement", statement), zap.Stringer("system", sys))
			return r, nil
		}
	}
	r, err := tableaux.ProveStatement(sys, statement, opts.Prove...)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		opts.Cache.Set(sys, statement, opts.Prove, r)
	}
	return r, nil
}
