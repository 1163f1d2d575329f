package lark

import (
	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	"go.uber.org/zap"
)

// SDKClient wraps the Lark SDK client together with the Bitable app it targets
type SDKClient struct {
	client   *lark.Client
	appToken string
	logger   *zap.Logger
}

// Config holds Lark client configuration
type Config struct {
	AppID     string
	AppSecret string
	// AppToken identifies the Bitable app holding the leave and holiday tables
	AppToken string
}

// NewSDKClient creates a new Lark SDK client. The tenant token is cached by the SDK.
func NewSDKClient(cfg Config, logger *zap.Logger) *SDKClient {
	client := lark.NewClient(cfg.AppID, cfg.AppSecret,
		lark.WithLogLevel(larkcore.LogLevelInfo),
		lark.WithEnableTokenCache(true),
	)

	return &SDKClient{
		client:   client,
		appToken: cfg.AppToken,
		logger:   logger,
	}
}

// GetClient returns the underlying Lark SDK client
func (c *SDKClient) GetClient() *lark.Client {
	return c.client
}

// AppToken returns the Bitable app token
func (c *SDKClient) AppToken() string {
	return c.appToken
}
