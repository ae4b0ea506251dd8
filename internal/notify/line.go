package notify

import (
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go-inventory-pos/pkg/logger"

	"go.uber.org/zap"
)

const lineNotifyAPI = "https://notify-api.line.me/api/notify"

// LineClient pushes plain-text messages to a LINE Notify channel.
// Delivery is best effort: a missing token or a failed request is logged
// at warn level and otherwise ignored.
type LineClient struct {
	token    string
	endpoint string
	client   *http.Client
}

func NewLineClient() *LineClient {
	return &LineClient{
		token:    os.Getenv("LINE_NOTIFY_TOKEN"),
		endpoint: lineNotifyAPI,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *LineClient) Send(message string) {
	if c.token == "" {
		logger.Get().Warn("LINE_NOTIFY_TOKEN is not set, notification skipped")
		return
	}

	form := url.Values{}
	form.Set("message", message)

	req, err := http.NewRequest(http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logger.Get().Warn("failed to build LINE notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Get().Warn("failed to send LINE notification", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Get().Warn("LINE notification rejected", zap.Int("status", resp.StatusCode))
		return
	}
	logger.Get().Info("LINE notification sent", zap.String("message", message))
}
