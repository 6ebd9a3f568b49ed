package main

import (
	"github.com/nihei9/rpmlicense/spdx"
	"go.uber.org/zap"
)

func readLicenseList(paths []string) (*spdx.List, error) {
	if len(paths) == 0 {
		return spdx.Default(), nil
	}
	return spdx.LoadFile(paths...)
}

// loggingOracle records every consultation of the license list.
type loggingOracle struct {
	list   *spdx.List
	logger *zap.Logger
}

func (o *loggingOracle) IsRecognized(token string) bool {
	ok := o.list.IsRecognized(token)
	o.logger.Debug("consulted the license list",
		zap.String("token", token),
		zap.Bool("recognized", ok),
		zap.String("list_version", o.list.Version()))
	return ok
}
