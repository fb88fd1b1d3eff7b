package common

type contextKey string

const (
	LoggerKey contextKey = "logger"
)
