package convsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

// RasaClient talks to a Rasa REST channel webhook.
type RasaClient struct {
	url    string
	client *rest.Client
}

var _ chat.Engine = (*RasaClient)(nil)

func NewRasaClient(conf *core.Config) *RasaClient {
	return &RasaClient{
		url:    conf.Chat.EngineURL,
		client: &rest.Client{HTTPClient: &http.Client{Timeout: conf.Chat.EngineTimeout}},
	}
}

// Send posts the message to the webhook and decodes the bot replies.
// A refused connection is reported as chat.ErrEngineUnavailable.
func (c *RasaClient) Send(ctx context.Context, msg chat.EngineMessage) ([]chat.EngineReply, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "encoding engine message")
	}

	resp, err := c.client.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, errors.Wrap(chat.ErrEngineUnavailable, err.Error())
		}
		return nil, errors.Wrap(err, "posting to conversation engine")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("conversation engine responded with status %d", resp.StatusCode)
	}

	if strings.TrimSpace(resp.Body) == "" {
		return nil, nil
	}
	var replies []chat.EngineReply
	if err = json.Unmarshal([]byte(resp.Body), &replies); err != nil {
		return nil, errors.Wrap(err, "decoding engine replies")
	}
	return replies, nil
}
