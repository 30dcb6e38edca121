package services

import (
    "encoding/json"
    "fmt"
    "io"
    "log"
    "os"
    "strings"
    "sync"
    "time"
)

// Logger defines common logging interface for all services
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
    LogLevelDebug LogLevel = iota
    LogLevelInfo
    LogLevelWarn
    LogLevelError
)

func (l LogLevel) String() string {
    switch l {
    case LogLevelDebug:
        return "DEBUG"
    case LogLevelInfo:
        return "INFO"
    case LogLevelWarn:
        return "WARN"
    case LogLevelError:
        return "ERROR"
    default:
        return "UNKNOWN"
    }
}

// ParseLogLevel maps LOG_LEVEL values onto a LogLevel, defaulting to INFO.
func ParseLogLevel(raw string) LogLevel {
    switch strings.ToUpper(strings.TrimSpace(raw)) {
    case "DEBUG":
        return LogLevelDebug
    case "WARN":
        return LogLevelWarn
    case "ERROR":
        return LogLevelError
    default:
        return LogLevelInfo
    }
}

// ProductionLogger writes one line per entry, JSON when structured.
// It is safe for concurrent use; background mail tasks log from their own goroutines.
type ProductionLogger struct {
    mu         sync.Mutex
    logger     *log.Logger
    level      LogLevel
    service    string
    structured bool
    now        func() time.Time
}

// NewProductionLogger creates a production-ready logger on stdout
func NewProductionLogger(service string) *ProductionLogger {
    return NewLoggerWithWriter(service, os.Stdout)
}

// NewLoggerWithWriter creates a structured INFO logger that writes to w.
func NewLoggerWithWriter(service string, w io.Writer) *ProductionLogger {
    return &ProductionLogger{
        logger:     log.New(w, "", 0),
        level:      LogLevelInfo,
        service:    service,
        structured: true,
        now:        time.Now,
    }
}

// SetLevel updates the logging level
func (p *ProductionLogger) SetLevel(level LogLevel) {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.level = level
}

// SetStructured enables/disables structured JSON logging
func (p *ProductionLogger) SetStructured(structured bool) {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.structured = structured
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
    p.log(LogLevelInfo, msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
    p.log(LogLevelError, msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
    p.log(LogLevelDebug, msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
    p.log(LogLevelWarn, msg, keysAndValues...)
}

func (p *ProductionLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
    p.mu.Lock()
    defer p.mu.Unlock()

    if level < p.level {
        return
    }
    timestamp := p.now().UTC().Format(time.RFC3339)

    if p.structured {
        logEntry := map[string]interface{}{
            "timestamp": timestamp,
            "level":     level.String(),
            "service":   p.service,
            "message":   msg,
        }

        if len(keysAndValues) > 0 {
            fields := make(map[string]interface{})
            for i := 0; i < len(keysAndValues)-1; i += 2 {
                if key, ok := keysAndValues[i].(string); ok {
                    fields[key] = fieldValue(keysAndValues[i+1])
                }
            }
            if len(fields) > 0 {
                logEntry["fields"] = fields
            }
        }

        jsonBytes, _ := json.Marshal(logEntry)
        p.logger.Println(string(jsonBytes))
        return
    }

    var kvStr strings.Builder
    for i := 0; i < len(keysAndValues)-1; i += 2 {
        kvStr.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
    }
    p.logger.Printf("[%s] %s [%s] %s%s",
        timestamp, level.String(), p.service, msg, kvStr.String())
}

// errors marshal to {} in JSON, so they are flattened to their message.
func fieldValue(v interface{}) interface{} {
    if err, ok := v.(error); ok {
        return err.Error()
    }
    return v
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger builds the process logger from GO_ENV/ENV and LOG_LEVEL.
func NewLogger(service string) Logger {
    env := strings.ToLower(os.Getenv("GO_ENV"))
    if env == "" {
        env = strings.ToLower(os.Getenv("ENV"))
    }
    if env == "test" {
        return &NoOpLogger{}
    }

    logger := NewProductionLogger(service)
    logger.SetLevel(ParseLogLevel(os.Getenv("LOG_LEVEL")))
    // Human-readable outside production
    logger.SetStructured(env == "production")
    return logger
}

// MaskEmail keeps enough of an address to correlate log lines without logging it whole.
func MaskEmail(email string) string {
    at := strings.LastIndex(email, "@")
    if at < 0 {
        return email[:min(2, len(email))] + "****"
    }
    return email[:min(2, at)] + "****" + email[at:]
}
