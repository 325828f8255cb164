package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrDuplicateID    = goerr.New("duplicate document ID")
	ErrUnknownLawID   = goerr.New("obligation references unknown law")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LawIDKey      = "law_id"
	ObligationKey = "obligation_id"
)
