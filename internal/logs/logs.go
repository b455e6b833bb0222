// Package logs wires every consensus subsystem to a per-subsystem btclog.Logger,
// rotated through the same logrotate backend the rest of the daemon uses.
package logs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// SubsystemTags is an enum of all consensus-core subsystem tags.
var SubsystemTags = struct {
	GDAG, // domain/consensus/processes/ghostdagmanager + reachabilitymanager
	ZKPF, // crypto/zkproof
	VRFX, // crypto/vrf
	STOR, // domain/consensus/datastructures/versionedstore and friends
	MPLX, // mempool
	VALD, // transactionvalidator / blockvalidator
	CFGX string // config/bps
}{
	GDAG: "GDAG",
	ZKPF: "ZKPF",
	VRFX: "VRFX",
	STOR: "STOR",
	MPLX: "MPLX",
	VALD: "VALD",
	CFGX: "CFGX",
}

var (
	backend = btclog.NewBackend(logWriter{})

	subsystemLoggers = map[string]btclog.Logger{
		SubsystemTags.GDAG: backend.Logger(SubsystemTags.GDAG),
		SubsystemTags.ZKPF: backend.Logger(SubsystemTags.ZKPF),
		SubsystemTags.VRFX: backend.Logger(SubsystemTags.VRFX),
		SubsystemTags.STOR: backend.Logger(SubsystemTags.STOR),
		SubsystemTags.MPLX: backend.Logger(SubsystemTags.MPLX),
		SubsystemTags.VALD: backend.Logger(SubsystemTags.VALD),
		SubsystemTags.CFGX: backend.Logger(SubsystemTags.CFGX),
	}

	rotatorInst *rotator.Rotator
	initiated   bool
)

// logWriter pipes backend output to stdout and, once initiated, to the rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if initiated {
		rotatorInst.Write(p)
	}
	return len(p), nil
}

// Logger returns the logger registered for the given subsystem tag. An
// unknown tag gets a new logger on the shared backend, registered under
// that tag, rather than a panic, mirroring the teacher's tolerance for
// dynamically-created subsystems.
func Logger(subsystemTag string) btclog.Logger {
	if logger, ok := subsystemLoggers[subsystemTag]; ok {
		return logger
	}
	logger := backend.Logger(subsystemTag)
	subsystemLoggers[subsystemTag] = logger
	return logger
}

// InitLogRotator initializes the rotating log file at logFile. It must be
// called before any subsystem logger is used if file persistence is desired;
// logging to stdout works unconditionally.
func InitLogRotator(logFile string) {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %s\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %s\n", err)
		os.Exit(1)
	}
	rotatorInst = r
	initiated = true
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored; invalid levels default to Info.
func SetLogLevel(subsystemTag string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemTag]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for every registered subsystem logger.
func SetLogLevels(logLevel string) {
	for tag := range subsystemLoggers {
		SetLogLevel(tag, logLevel)
	}
}
