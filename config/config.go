package config

// Config is the program's ambient configuration: logging and debug-report
// destinations. Per-document extraction/rendering settings live in
// parse.Options and render.Options instead, so this package never needs to
// import either of them.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Reporter ReporterConfig `yaml:"reporter,omitempty"`
}
