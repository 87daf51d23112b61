package dbase

import (
	"io"
	"log"
	"os"
)

var debug = false
var debugLogger = log.New(os.Stdout, "[dbase] [DEBUG] ", log.LstdFlags)
var errorLogger = log.New(os.Stdout, "[dbase] [ERROR] ", log.LstdFlags)

// Debug enables or disables the debug and error log output.
// A nil writer keeps the current output.
func Debug(enabled bool, out io.Writer) {
	debug = enabled
	if out != nil {
		debugLogger.SetOutput(out)
		errorLogger.SetOutput(out)
	}
}

func debugf(format string, v ...interface{}) {
	if debug {
		debugLogger.Printf(format, v...)
	}
}

func errorf(format string, v ...interface{}) {
	if debug {
		errorLogger.Printf(format, v...)
	}
}
