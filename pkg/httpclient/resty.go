package httpclient

import (
	"context"
	"time"

	"portfolio-insight/pkg/logger"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
	log    *logger.Logger
}

func New(log *logger.Logger, baseURL string, timeout time.Duration, bearerToken string) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if bearerToken != "" {
		client.SetAuthToken(bearerToken)
	}

	return &RestyClient{client: client, log: log}
}

// SetAuthToken replaces the bearer token used for subsequent requests.
func (rc *RestyClient) SetAuthToken(token string) {
	rc.client.SetAuthToken(token)
}

// GET request with optional query params
func (rc *RestyClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}

	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}

	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		rc.log.ErrorContext(ctx, "HTTP GET failed",
			logger.StringField("endpoint", endpoint),
			logger.ErrorField(err),
		)
		return nil, err
	}
	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}

// POST request with body
func (rc *RestyClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().
		SetContext(ctx).
		SetBody(body)
	if result != nil {
		req.SetResult(result)
	}

	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Post(endpoint)
	if err != nil {
		rc.log.ErrorContext(ctx, "HTTP POST failed",
			logger.StringField("endpoint", endpoint),
			logger.ErrorField(err),
		)
		return nil, err
	}
	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}
