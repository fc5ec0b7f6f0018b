package lookup

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// httpDoer lets tests substitute the HTTP transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// breakerClient wraps an HTTP client in a circuit breaker so a dead
// endpoint fails fast instead of stalling every pairing of a batch with
// full timeouts.
type breakerClient struct {
	client  httpDoer
	breaker *gobreaker.CircuitBreaker
}

func newBreakerClient(name string, client httpDoer) *breakerClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &breakerClient{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

func (b *breakerClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := b.breaker.Execute(func() (interface{}, error) {
		resp, err := b.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%s: server error %d", b.breaker.Name(), resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.(*http.Response), nil
}
