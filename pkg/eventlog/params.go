package eventlog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ethanbaker/meetup-seed/pkg/utils"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

var (
	// Unquoted SQL identifier, optionally schema-qualified for tables
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

	// Schema names cannot be qualified
	schemaPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Params holds everything the generator and renderer need to produce a seed script
type Params struct {
	Schema string `yaml:"schema" validate:"required,sqlschema"`
	Table  string `yaml:"table" validate:"required,sqlident"`

	SessionCount        int `yaml:"sessions" validate:"gte=0"`
	MinEventsPerSession int `yaml:"min_events" validate:"gte=1"`
	MaxEventsPerSession int `yaml:"max_events" validate:"gtefield=MinEventsPerSession"`

	// Offsets must be positive so timestamps strictly increase within a session
	MinSecondsBetweenEvents int `yaml:"min_seconds" validate:"gte=1"`
	MaxSecondsBetweenEvents int `yaml:"max_seconds" validate:"gtefield=MinSecondsBetweenEvents"`
}

// DefaultParams returns the compiled-in generation parameters
func DefaultParams() Params {
	return Params{
		Schema:                  DEFAULT_SCHEMA,
		Table:                   DEFAULT_TABLE,
		SessionCount:            DEFAULT_SESSIONS,
		MinEventsPerSession:     DEFAULT_MIN_EVENTS,
		MaxEventsPerSession:     DEFAULT_MAX_EVENTS,
		MinSecondsBetweenEvents: DEFAULT_MIN_SECONDS_BETWEEN,
		MaxSecondsBetweenEvents: DEFAULT_MAX_SECONDS_BETWEEN,
	}
}

// Validate checks the parameters against their struct constraints
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// ParamsFromConfig overlays the params file and then individual config keys on the defaults.
// The GEN_* keys, .env files and params file are opt-in overrides for local runs only; a config
// with none of the keys set yields DefaultParams()
func ParamsFromConfig(cfg *utils.Config) (Params, error) {
	params := DefaultParams()

	if path := cfg.Get(KEY_PARAMS_FILE); path != "" {
		if err := params.loadFile(path); err != nil {
			return Params{}, err
		}
	}

	params.Schema = cfg.GetWithDefault(KEY_SCHEMA, params.Schema)
	params.Table = cfg.GetWithDefault(KEY_TABLE, params.Table)

	overrides := []struct {
		key   string
		field *int
	}{
		{KEY_SESSIONS, &params.SessionCount},
		{KEY_MIN_EVENTS, &params.MinEventsPerSession},
		{KEY_MAX_EVENTS, &params.MaxEventsPerSession},
		{KEY_MIN_SECONDS, &params.MinSecondsBetweenEvents},
		{KEY_MAX_SECONDS, &params.MaxSecondsBetweenEvents},
	}

	for _, o := range overrides {
		value := cfg.Get(o.key)
		if value == "" {
			continue
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidParams, o.key, value)
		}
		*o.field = parsed
	}

	if err := params.Validate(); err != nil {
		return Params{}, err
	}

	return params, nil
}

// loadFile reads a YAML params file over the current values. Fields absent from the file are kept
func (p *Params) loadFile(path string) error {
	data, err := utils.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrParamsFile, path, err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("%w %s: %v", ErrParamsFile, path, err)
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "sqlident", identifierPattern)
	mustRegister(v, "sqlschema", schemaPattern)
	return v
}

// mustRegister adds a tag matching a string field against pattern, panicking if the tag is rejected
func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("eventlog: registering validation %q: %v", tag, err))
	}
}
