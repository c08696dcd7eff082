package eventlog

const (
	// Target schema and table
	DEFAULT_SCHEMA = "meetup"
	DEFAULT_TABLE  = "events"

	// Generation parameters
	DEFAULT_SESSIONS            = 10
	DEFAULT_MIN_EVENTS          = 1
	DEFAULT_MAX_EVENTS          = 10
	DEFAULT_MIN_SECONDS_BETWEEN = 1
	DEFAULT_MAX_SECONDS_BETWEEN = 600

	// Config keys
	KEY_PARAMS_FILE = "GEN_PARAMS_FILE"
	KEY_SCHEMA      = "GEN_SCHEMA"
	KEY_TABLE       = "GEN_TABLE"
	KEY_SESSIONS    = "GEN_SESSIONS"
	KEY_MIN_EVENTS  = "GEN_MIN_EVENTS"
	KEY_MAX_EVENTS  = "GEN_MAX_EVENTS"
	KEY_MIN_SECONDS = "GEN_MIN_SECONDS"
	KEY_MAX_SECONDS = "GEN_MAX_SECONDS"
)
