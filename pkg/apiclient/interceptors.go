package apiclient

import (
	"context"
	"errors"

	"github.com/go-resty/resty/v2"
)

// authorize is the request interceptor. It runs once per request before
// transmission and only touches the Authorization header.
func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	if c.credentials == nil {
		return nil
	}
	token, err := c.credentials.Credential(r.Context())
	if err != nil {
		c.log.ErrorObj("request interceptor error", "request_interceptor_error", map[string]any{
			"url":        r.URL,
			"request_id": r.Header.Get(HeaderRequestID),
			"error":      err.Error(),
		})
		return &constructionError{err: err}
	}
	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// intercept is the response interceptor. It returns the envelope data on
// success and a typed error otherwise.
func (c *Client) intercept(ctx context.Context, cfg RequestConfig, resp *resty.Response, sendErr error) ([]byte, error) {
	info := RequestInfo{ID: cfg.requestID, Method: cfg.Method, URL: cfg.URL}

	if sendErr != nil {
		gotResponse := resp != nil && resp.RawResponse != nil
		return nil, c.sendFailed(ctx, cfg, info, sendErr, gotResponse)
	}

	info.Status = resp.StatusCode()
	if !resp.IsSuccess() {
		terr := &TransportError{
			Status:  resp.StatusCode(),
			URL:     cfg.URL,
			Message: Classify(Failure{HasResponse: true, Status: resp.StatusCode(), URL: cfg.URL}),
			Body:    resp.Body(),
		}
		if cfg.SkipErrorHandler {
			return nil, terr
		}
		c.logFailure(info, terr.Message, nil)
		c.notifyFailure(ctx, cfg, info, terr.Message)
		return nil, terr
	}

	env, err := decodeEnvelope(resp.Body())
	if err != nil {
		derr := &DecodeError{Status: resp.StatusCode(), Body: resp.Body(), Err: err}
		if cfg.SkipErrorHandler {
			return nil, derr
		}
		c.logFailure(info, requestFailedMessage, err)
		c.notifyFailure(ctx, cfg, info, requestFailedMessage)
		return nil, derr
	}

	if env.OK() {
		return env.Data, nil
	}

	info.Code = env.Code
	if cfg.SkipErrorHandler {
		return nil, &ApplicationError{Code: env.Code, Message: env.Message, Envelope: env}
	}

	msg := env.Message
	if msg == "" {
		msg = defaultAppErrorMessage
	}
	c.logFailure(info, msg, nil)
	c.notifyFailure(ctx, cfg, info, msg)
	if isReauthCode(env.Code) {
		c.promptReauth(ctx, info)
	}
	return nil, &ApplicationError{Code: env.Code, Message: msg, Envelope: env}
}

// sendFailed handles errors where no usable response exists.
func (c *Client) sendFailed(ctx context.Context, cfg RequestConfig, info RequestInfo, err error, gotResponse bool) error {
	failure, sent := failureFromError(cfg.URL, err, gotResponse)

	if cfg.SkipErrorHandler {
		var ce *constructionError
		if errors.As(err, &ce) {
			return ce.err
		}
		return err
	}

	msg := Classify(failure)
	c.logFailure(info, msg, err)
	c.notifyFailure(ctx, cfg, info, msg)

	if sent {
		return &NetworkError{URL: cfg.URL, Message: msg, Err: err}
	}
	var ce *constructionError
	if errors.As(err, &ce) {
		err = ce.err
	}
	return &RequestError{Message: msg, Err: err}
}

// notifyFailure emits the single toast for a failed request.
func (c *Client) notifyFailure(ctx context.Context, cfg RequestConfig, info RequestInfo, msg string) {
	toast := Toast{
		Message:  msg,
		Type:     ToastFail,
		Duration: cfg.toastDuration(c.toastDuration),
		Request:  info,
	}
	if err := c.notifier.Notify(ctx, toast); err != nil {
		c.log.WarnObj("failure notification not delivered", "notify_error", map[string]any{
			"request_id": info.ID,
			"error":      err.Error(),
		})
	}
}

// promptReauth asks whether to log in again and redirects on acceptance.
func (c *Client) promptReauth(ctx context.Context, info RequestInfo) {
	if c.dialog == nil {
		return
	}
	ok, err := c.dialog.Confirm(ctx, reauthDialog)
	if err != nil {
		c.log.WarnObj("re-authentication prompt failed", "reauth_error", map[string]any{
			"request_id": info.ID,
			"error":      err.Error(),
		})
		return
	}
	if !ok {
		c.log.DebugObj("user cancelled login redirect", "reauth", map[string]any{"request_id": info.ID})
		return
	}
	if c.navigator == nil {
		return
	}
	if err := c.navigator.Redirect(ctx, c.loginPath); err != nil {
		c.log.WarnObj("login redirect failed", "reauth_error", map[string]any{
			"request_id": info.ID,
			"error":      err.Error(),
		})
	}
}

func (c *Client) logFailure(info RequestInfo, msg string, err error) {
	fields := map[string]any{
		"request_id": info.ID,
		"method":     info.Method,
		"url":        info.URL,
		"message":    msg,
	}
	if info.Status != 0 {
		fields["status"] = info.Status
	}
	if info.Code != 0 {
		fields["code"] = info.Code
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	c.log.WarnObj("response interceptor error", "request_error", fields)
}

func isReauthCode(code int) bool {
	return code == 401 || code == 403
}
