package httpclient

import (
	"crypto/tls"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// HclogAdapter adapts an hclog.Logger to the resty log.Logger interface.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates a new adapter that forwards messages to a hclog.Logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// NewRestyClient initializes a resty client from the http_client section of
// the configuration, with the hclog logger attached.
func NewRestyClient(logger hclog.Logger, cfg *config.Config) *resty.Client {
	client := resty.New()
	if logger != nil {
		client.SetLogger(NewHclogAdapter(logger))
	}

	httpCfg := cfg.HttpClient
	defaults := config.DefaultConfig().HttpClient
	if httpCfg.RetryCount == 0 {
		httpCfg.RetryCount = defaults.RetryCount
	}
	if httpCfg.RetryWaitTime == 0 {
		httpCfg.RetryWaitTime = defaults.RetryWaitTime
	}
	if httpCfg.RetryMaxWaitTime == 0 {
		httpCfg.RetryMaxWaitTime = defaults.RetryMaxWaitTime
	}
	if httpCfg.Timeout == 0 {
		httpCfg.Timeout = defaults.Timeout
	}

	client.
		SetDebug(httpCfg.Debug).
		SetRetryCount(httpCfg.RetryCount).
		SetRetryWaitTime(httpCfg.RetryWaitTime).
		SetRetryMaxWaitTime(httpCfg.RetryMaxWaitTime).
		SetTimeout(httpCfg.Timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !httpCfg.TlsClientConfig.Verify})

	return client
}
