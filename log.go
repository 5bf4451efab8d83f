package zkattest

import (
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("zkattest")

// SetLogLevel changes the level of the zkattest logger.
func SetLogLevel(level string) error {
	return logging.SetLogLevel("zkattest", level)
}
