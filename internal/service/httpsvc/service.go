package httpsvc

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/cloudmeta/internal/service"
	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

/*
Responsibilities

- Perform HTTP requests against the metadata endpoint
- Apply headers and the request timeout
- Classify responses: 404 is absent metadata, everything else transient or fatal

Fetch Semantics

- One GET per FetchData call; retries belong to the accessor
- The request timeout is owned here: a hung endpoint fails the attempt
- Responses are returned as opaque bytes; parsing belongs to the accessor

The service never builds paths; it resolves the ones it is handed against
its base URL.
*/

// HttpService fetches metadata over HTTP from a provider endpoint, the
// usual transport for link-local metadata servers. Retry is enabled: the
// endpoint may not be reachable yet while the instance network comes up.
type HttpService struct {
	sink       telemetry.Sink
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewHttpService(
	sink telemetry.Sink,
	baseURL string,
	userAgent string,
	timeout time.Duration,
) *HttpService {
	return &HttpService{
		sink:      sink,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (h *HttpService) Name() string {
	return "http"
}

func (h *HttpService) EnableRetry() bool {
	return true
}

func (h *HttpService) CanPostPassword() bool {
	return true
}

func (h *HttpService) FetchData(path string) (service.Payload, failure.ClassifiedError) {
	startTime := time.Now()

	req, err := http.NewRequest(http.MethodGet, h.url(path), nil)
	if err != nil {
		return service.Payload{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		// Network/transport errors are retryable
		fetchErr := &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
		h.recordError("HttpService.FetchData", path, fetchErr)
		return service.Payload{}, fetchErr
	}
	defer resp.Body.Close()

	if classifyErr := h.classifyStatus(path, resp.StatusCode); classifyErr != nil {
		h.recordError("HttpService.FetchData", path, classifyErr)
		return service.Payload{}, classifyErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchErr := &FetchError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
		}
		h.recordError("HttpService.FetchData", path, fetchErr)
		return service.Payload{}, fetchErr
	}

	h.sink.RecordFetch(path, false, 0, time.Since(startTime), len(body))
	return service.NewRawPayload(body), nil
}

func (h *HttpService) PostData(path string, data []byte) failure.ClassifiedError {
	req, err := http.NewRequest(http.MethodPost, h.url(path), bytes.NewReader(data))
	if err != nil {
		return &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		fetchErr := &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
		h.recordError("HttpService.PostData", path, fetchErr)
		return fetchErr
	}
	defer resp.Body.Close()

	if classifyErr := h.classifyStatus(path, resp.StatusCode); classifyErr != nil {
		h.recordError("HttpService.PostData", path, classifyErr)
		return classifyErr
	}
	return nil
}

// Cleanup drops the idle connections kept alive for the endpoint.
func (h *HttpService) Cleanup() failure.ClassifiedError {
	h.httpClient.CloseIdleConnections()
	return nil
}

func (h *HttpService) url(path string) string {
	return h.baseURL + "/" + strings.TrimLeft(path, "/")
}

// classifyStatus maps an HTTP status code to the error model: 404 means the
// metadata genuinely does not exist, server-side trouble is retryable, and
// remaining client errors are fatal.
func (h *HttpService) classifyStatus(path string, statusCode int) failure.ClassifiedError {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil

	case statusCode == http.StatusNotFound:
		return service.NewNotExistingError(path)

	case statusCode >= 500:
		return &FetchError{
			Message:   fmt.Sprintf("server error: %d", statusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}

	case statusCode == http.StatusTooManyRequests:
		return &FetchError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}

	case statusCode == http.StatusForbidden:
		return &FetchError{
			Message:   "access forbidden (403)",
			Retryable: false,
			Cause:     ErrCauseRequestForbidden,
		}

	default:
		return &FetchError{
			Message:   fmt.Sprintf("unexpected status: %d", statusCode),
			Retryable: false,
			Cause:     ErrCauseRequestClientError,
		}
	}
}

func (h *HttpService) recordError(action string, path string, err failure.ClassifiedError) {
	cause := telemetry.CauseUnknown
	if fetchErr, ok := err.(*FetchError); ok {
		cause = mapFetchErrorToTelemetryCause(fetchErr)
	} else if service.IsNotExisting(err) {
		cause = telemetry.CauseNotExisting
	}

	h.sink.RecordError(
		time.Now(),
		"httpsvc",
		action,
		cause,
		err.Error(),
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrURL, h.url(path)),
			telemetry.NewAttr(telemetry.AttrPath, path),
		},
	)
}
