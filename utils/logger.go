package utils

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

// InitLogger configures the global zerolog logger. Development gets colored
// console output, everything else structured JSON.
func InitLogger(env string) {
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func ColorText(text, color string) string {
	return color + text + Reset
}

func ColorStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ColorText(fmt.Sprintf("%d", statusCode), Green)
	case statusCode >= 400 && statusCode < 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Yellow)
	case statusCode >= 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Red)
	default:
		return fmt.Sprintf("%d", statusCode)
	}
}

// PrintLogInfo logs the outcome of a handler call. Pass nil when there is no
// authenticated user or no error.
func PrintLogInfo(email *string, statusCode int, functionName string, err *error) {
	user := "anonymous"
	if email != nil {
		user = *email
	}

	event := log.Info()
	switch {
	case statusCode >= 500:
		event = log.Error()
	case statusCode >= 400:
		event = log.Warn()
	}
	if err != nil && *err != nil {
		event = event.Err(*err)
	}

	event.
		Str("user", user).
		Int("status", statusCode).
		Str("function", functionName).
		Msg("request handled")

	if statusCode >= http.StatusBadRequest {
		fmt.Printf("%sUser: %s | Status: %s | Function: %s%s\n",
			Yellow, user, ColorStatus(statusCode), functionName, Reset)
	}
}
