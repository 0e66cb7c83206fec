package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chupacabra/chupacabra/internal/common/apperrors"
	"github.com/chupacabra/chupacabra/internal/common/logtrace"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody bounds how much of an unparseable error body ends up in the cause.
const maxErrorBody = 512

// Empty is the result type of endpoints that return no meaningful payload.
// A blank body resolves to Empty without decoding; any other valid JSON body
// is accepted and discarded.
type Empty struct{}

// UnmarshalJSON accepts any valid JSON document.
func (*Empty) UnmarshalJSON(data []byte) error {
	if !jsonAPI.Valid(data) {
		return errors.New("invalid JSON")
	}
	return nil
}

// Fetch performs r and decodes a successful response into T.
//
// Every failure is a *apperrors.RequestError, except cancellation: when ctx
// is canceled or times out, ctx.Err() is returned as is.
func Fetch[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var result T

	ctx = logtrace.WithRequestID(ctx)
	logger := c.loggerFor(ctx).With().Str("method", r.method()).Str("path", r.Path).Logger()
	start := time.Now()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		logger.Warn().Err(err).Msg("request not sent")
		return result, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Debug().Err(ctxErr).Msg("request abandoned")
			return result, ctxErr
		}
		err = apperrors.Network(err)
		logger.Warn().Err(err).Msg("request failed")
		return result, err
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	logger = logger.With().Int("status", status).Dur("elapsed", time.Since(start)).Logger()

	if status == http.StatusUnauthorized {
		c.expireSession(ctx)
		logger.Warn().Msg("unauthorized")
		return result, apperrors.Unauthorized()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		err = apperrors.Network(err)
		logger.Warn().Err(err).Msg("reading response failed")
		return result, err
	}

	if status < 200 || status > 299 {
		err := apperrors.Server(status, serverCause(status, body))
		logger.Warn().Err(err).Msg("server rejected request")
		return result, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		if _, isEmpty := any(result).(Empty); isEmpty {
			logger.Debug().Msg("request succeeded")
			return result, nil
		}
		err := apperrors.Decoding(status, errors.New("empty response body"))
		logger.Warn().Err(err).Msg("decoding response failed")
		return result, err
	}

	if err := jsonAPI.Unmarshal(body, &result); err != nil {
		var zero T
		err = apperrors.Decoding(status, err)
		logger.Warn().Err(err).Msg("decoding response failed")
		return zero, err
	}
	logger.Debug().Msg("request succeeded")
	return result, nil
}

// serverCause extracts the server's explanation from an error body. NestJS
// style bodies carry it in "message" (a string or a list of strings), others
// in "error"; anything else is reported verbatim.
func serverCause(status int, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errors.New(strings.ToLower(http.StatusText(status)))
	}
	if gjson.ValidBytes(trimmed) {
		for _, field := range []string{"message", "error"} {
			v := gjson.GetBytes(trimmed, field)
			switch {
			case v.IsArray():
				var parts []string
				for _, item := range v.Array() {
					parts = append(parts, item.String())
				}
				if len(parts) > 0 {
					return errors.New(strings.Join(parts, "; "))
				}
			case v.Type == gjson.String && v.String() != "":
				return errors.New(v.String())
			}
		}
	}
	if len(trimmed) > maxErrorBody {
		trimmed = append(trimmed[:maxErrorBody:maxErrorBody], "..."...)
	}
	return errors.New(string(trimmed))
}

// Get is Fetch with GET.
func Get[T any](ctx context.Context, c *Client, path string, query map[string]string) (T, error) {
	return Fetch[T](ctx, c, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post is Fetch with POST.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Fetch[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put is Fetch with PUT.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Fetch[T](ctx, c, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete is Fetch with DELETE.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Fetch[T](ctx, c, Request{Method: http.MethodDelete, Path: path})
}
