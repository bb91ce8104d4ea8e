package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// RollingFile is the rotation setting of one log file.
type RollingFile struct {
	Name       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`
}

// Access returns the rotation setting of the access log.
func (f LogFile) Access() RollingFile {
	return RollingFile{f.AccessLog, f.AccessMaxSize, f.AccessMaxBackups, f.AccessMaxAge}
}

// Error returns the rotation setting of the error log.
func (f LogFile) Error() RollingFile {
	return RollingFile{f.ErrorLog, f.ErrorMaxSize, f.ErrorMaxBackups, f.ErrorMaxAge}
}

// Info returns the rotation setting of the info log.
func (f LogFile) Info() RollingFile {
	return RollingFile{f.InfoLog, f.InfoMaxSize, f.InfoMaxBackups, f.InfoMaxAge}
}

// Trace returns the rotation setting of the trace log.
func (f LogFile) Trace() RollingFile {
	return RollingFile{f.TraceLog, f.TraceMaxSize, f.TraceMaxBackups, f.TraceMaxAge}
}

// Warn returns the rotation setting of the warn log.
func (f LogFile) Warn() RollingFile {
	return RollingFile{f.WarnLog, f.WarnMaxSize, f.WarnMaxBackups, f.WarnMaxAge}
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole if true the web service writes its access log to the console.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File based logging with rotation.
	File LogFile `toml:"file"`
}
