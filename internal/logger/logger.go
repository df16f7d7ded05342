// Package logger builds the process-wide zap logger. Components
// receive it via constructor injection; nothing reads a global.
package logger

import "go.uber.org/zap"

// New returns a production logger (JSON, info level) for the
// "production" environment and a development logger otherwise.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
