package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the service logger, development output unless production
func NewLogger(production bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if production {
		z, err = zap.NewProduction()
	} else {
		cfg := zap.NewDevelopmentConfig()
		z, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
