package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"gsdoc/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// PageConfig describes paper size in inches.
	PageConfig struct {
		Width  float64 `yaml:"width" validate:"gt=0"`
		Height float64 `yaml:"height" validate:"gt=0"`
	}

	// MarginConfig describes page margins in inches.
	MarginConfig struct {
		Top    float64 `yaml:"top" validate:"gte=0"`
		Bottom float64 `yaml:"bottom" validate:"gte=0"`
		Left   float64 `yaml:"left" validate:"gte=0"`
		Right  float64 `yaml:"right" validate:"gte=0"`
		Header float64 `yaml:"header" validate:"gte=0"`
		Footer float64 `yaml:"footer" validate:"gte=0"`
	}

	// LayoutConfig is the page-layout catalog page-spec and margin-spec TOC
	// values are resolved against.
	LayoutConfig struct {
		DefaultPage   string                  `yaml:"default_page" validate:"required"`
		DefaultMargin string                  `yaml:"default_margin" validate:"required"`
		Pages         map[string]PageConfig   `yaml:"pages" validate:"required,dive"`
		Margins       map[string]MarginConfig `yaml:"margins" validate:"required,dive"`
	}

	GridConfig struct {
		// PixelsPerUnit converts sheet pixels to physical units used by
		// renderers (96 gives inches at screen resolution).
		PixelsPerUnit      float64 `yaml:"pixels_per_unit" validate:"gt=0"`
		ColumnSeparator    float64 `yaml:"column_separator" validate:"gte=0"`
		RowSeparator       float64 `yaml:"row_separator" validate:"gte=0"`
		DefaultColumnWidth float64 `yaml:"default_column_width" validate:"gt=0"`
		DefaultRowHeight   float64 `yaml:"default_row_height" validate:"gt=0"`
		StrictMerges       bool    `yaml:"strict_merges"`
	}

	FetchConfig struct {
		Attempts int           `yaml:"attempts" validate:"min=1,max=20"`
		Delay    time.Duration `yaml:"delay" validate:"gte=0"`
	}

	ImagesConfig struct {
		Format      common.ImageFormat `yaml:"format"`
		MaxWidth    int                `yaml:"max_width" validate:"gte=0"`
		MaxHeight   int                `yaml:"max_height" validate:"gte=0"`
		JPEGQuality int                `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		DPI         int                `yaml:"dpi" validate:"gte=0,lte=2400"`
	}

	DocumentConfig struct {
		TOCWorksheet string       `yaml:"toc_worksheet" validate:"required"`
		Root         string       `yaml:"root,omitempty" sanitize:"path_clean"`
		Layout       LayoutConfig `yaml:"layout"`
		Grid         GridConfig   `yaml:"grid"`
		Fetch        FetchConfig  `yaml:"fetch"`
		Images       ImagesConfig `yaml:"images"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// checkLayout makes sure catalog defaults point to existing entries.
func checkLayout(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	layout := cfg.Document.Layout
	if _, exists := layout.Pages[layout.DefaultPage]; !exists {
		sl.ReportError(layout.DefaultPage, "DefaultPage", "default_page", "page_in_catalog", "")
	}
	if _, exists := layout.Margins[layout.DefaultMargin]; !exists {
		sl.ReportError(layout.DefaultMargin, "DefaultMargin", "default_margin", "margin_in_catalog", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkLayout)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// HasPage reports whether page-spec identifier is known to the catalog.
func (l *LayoutConfig) HasPage(name string) bool {
	_, ok := l.Pages[name]
	return ok
}

// HasMargin reports whether margin-spec identifier is known to the catalog.
func (l *LayoutConfig) HasMargin(name string) bool {
	_, ok := l.Margins[name]
	return ok
}
