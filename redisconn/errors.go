package redisconn

import "errors"

var (
	ErrEmptyURL          = errors.New("empty redis connection URL")
	ErrInvalidURL        = errors.New("failed to parse redis connection URL")
	ErrNotReady          = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
