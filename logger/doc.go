// Package logger provides structured logging for seqkit using zerolog.
//
// Logs go to stderr by default so that evaluation results written to
// stdout stay machine-readable.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("evaluator")
//	log.Debug("evaluation finished", logger.Fields("pipeline", "even-numbers"))
package logger
