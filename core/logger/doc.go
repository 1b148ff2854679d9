// Package logger captures the interpreter's command event log: one entry
// per dispatched command, written as newline delimited JSON. The log is a
// side channel for later inspection and never writes to the session's
// terminal.
package logger
