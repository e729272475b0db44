package siteconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Site is the declarative front-end configuration: framework modules,
// transpile and pre-bundle hints, and analytics identifiers.
type Site struct {
	CompatibilityDate string    `yaml:"compatibilityDate" json:"compatibilityDate"`
	Devtools          bool      `yaml:"devtools" json:"devtools"`
	Modules           []string  `yaml:"modules" json:"modules"`
	Build             Build     `yaml:"build" json:"build"`
	Vite              Vite      `yaml:"vite" json:"vite"`
	Analytics         Analytics `yaml:"analytics" json:"analytics"`
}

type Build struct {
	Transpile []string `yaml:"transpile" json:"transpile"`
}

type Vite struct {
	OptimizeDeps OptimizeDeps `yaml:"optimizeDeps" json:"optimizeDeps"`
}

type OptimizeDeps struct {
	Include []string `yaml:"include" json:"include"`
}

type Analytics struct {
	GTMID string `yaml:"gtmId" json:"gtmId,omitempty"`
	GAID  string `yaml:"gaId" json:"gaId,omitempty"`
}

var (
	gtmIDPattern = regexp.MustCompile(`^GTM-[A-Z0-9]+$`)
	gaIDPattern  = regexp.MustCompile(`^G-[A-Z0-9]+$`)
)

var pdfPackages = []string{"@pdfme/generator", "@pdfme/common"}

// Default returns the configuration the front-end ships with.
func Default() *Site {
	return &Site{
		CompatibilityDate: "2025-05-15",
		Devtools:          true,
		Modules:           []string{"@nuxtjs/tailwindcss", "@nuxthub/core"},
		Build:             Build{Transpile: append([]string(nil), pdfPackages...)},
		Vite:              Vite{OptimizeDeps: OptimizeDeps{Include: append([]string(nil), pdfPackages...)}},
	}
}

// Load reads a YAML file. An empty path returns Default.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML. Unknown keys are rejected.
func Parse(data []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Site) Validate() error {
	var errs []error

	if _, err := time.Parse(time.DateOnly, s.CompatibilityDate); err != nil {
		errs = append(errs, fmt.Errorf("compatibilityDate must be YYYY-MM-DD, got %q", s.CompatibilityDate))
	}

	seen := make(map[string]bool, len(s.Modules))
	for _, m := range s.Modules {
		switch {
		case m == "":
			errs = append(errs, errors.New("modules must not contain empty names"))
		case seen[m]:
			errs = append(errs, fmt.Errorf("module %q listed more than once", m))
		}
		seen[m] = true
	}

	if s.Analytics.GTMID != "" && !gtmIDPattern.MatchString(s.Analytics.GTMID) {
		errs = append(errs, fmt.Errorf("analytics.gtmId %q is not a tag manager container id", s.Analytics.GTMID))
	}
	if s.Analytics.GAID != "" && !gaIDPattern.MatchString(s.Analytics.GAID) {
		errs = append(errs, fmt.Errorf("analytics.gaId %q is not a measurement id", s.Analytics.GAID))
	}

	return errors.Join(errs...)
}
