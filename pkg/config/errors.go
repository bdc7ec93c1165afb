package config

import "errors"

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrEnvFile       = errors.New("failed to read env file")
)
