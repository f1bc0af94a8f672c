// Package logger provides structured logging for seqkit using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields. Pipelines receive a
// *Logger explicitly (see pipeline.Trace); there is no implicit tracing
// channel.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg, "seqkit").WithComponent("words")
//	log.Info("counted", logger.Fields("distinct", n))
package logger
