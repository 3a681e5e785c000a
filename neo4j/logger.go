package neo4j

import (
	neo4jlog "github.com/neo4j/neo4j-go-driver/v5/neo4j/log"
	"github.com/yaoapp/kun/log"
)

// driverLogger writes the driver log of one connection target to kun/log.
// The driver reports pool and routing activity as info on every call, it is
// logged as debug.
type driverLogger struct {
	target string
}

func newDriverLogger(target string) neo4jlog.Logger {
	return &driverLogger{target: target}
}

func (l *driverLogger) fields(name, id string) log.F {
	return log.F{"target": l.target, "driver": name, "conn": id}
}

func (l *driverLogger) Error(name, id string, err error) {
	if err == nil {
		return
	}
	log.With(l.fields(name, id)).Error("[neo4j] %s", ParseError(err))
}

func (l *driverLogger) Warnf(name, id string, msg string, args ...any) {
	log.With(l.fields(name, id)).Warn("[neo4j] "+msg, args...)
}

func (l *driverLogger) Infof(name, id string, msg string, args ...any) {
	log.With(l.fields(name, id)).Debug("[neo4j] "+msg, args...)
}

func (l *driverLogger) Debugf(name, id string, msg string, args ...any) {
	log.With(l.fields(name, id)).Trace("[neo4j] "+msg, args...)
}
