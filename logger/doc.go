// Package logger provides structured logging for gqlkit using zerolog.
//
// Handlers and client middleware take a *Logger; when none is supplied they
// fall back to Nop so the library stays silent unless the application opts in.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "catalog")
//	h := handler.NewBuilder[Data]().WithClient(c).WithLogger(log).Build()
package logger
