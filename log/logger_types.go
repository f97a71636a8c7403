package log

import (
	"io"
	"os"
	"sync"
)

const (
	timestampFormat = "02/01/2006 15:04:05"

	infoHeader  = "[INFO]"
	warnHeader  = "[WARN]"
	debugHeader = "[DEBUG]"
	errorHeader = "[ERROR]"
)

var (
	mu         sync.RWMutex
	output     io.Writer = os.Stdout
	subLoggers           = map[string]*SubLogger{}

	// Global is the default sublogger for anything without a subsystem
	Global *SubLogger

	// Engine covers the driver's state machine and run loop
	Engine *SubLogger
	// Sync covers the time synchronizer
	Sync *SubLogger
	// Portfolio covers ledger mutations and equity recalculation
	Portfolio *SubLogger
	// Exchange covers simulated order execution
	Exchange *SubLogger
	// CorpActions covers dividend and split processing
	CorpActions *SubLogger
	// Strategy covers strategy callbacks
	Strategy *SubLogger
	// Data covers feed loading
	Data *SubLogger
	// Config covers configuration parsing
	Config *SubLogger
)

// SubLogger is a per-subsystem logger with individually switchable levels
type SubLogger struct {
	name  string
	debug bool
	info  bool
	warn  bool
	error bool
}

func init() {
	Global = registerNewSubLogger("LOG")
	Engine = registerNewSubLogger("ENGINE")
	Sync = registerNewSubLogger("SYNC")
	Portfolio = registerNewSubLogger("PORTFOLIO")
	Exchange = registerNewSubLogger("EXCHANGE")
	CorpActions = registerNewSubLogger("CORPACTIONS")
	Strategy = registerNewSubLogger("STRATEGY")
	Data = registerNewSubLogger("DATA")
	Config = registerNewSubLogger("CONFIG")
}
