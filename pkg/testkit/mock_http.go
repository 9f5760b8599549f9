// Package testkit holds shared test doubles. The mock transport intercepts
// outgoing store API calls so the test suite never touches a real
// WooCommerce installation.
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/adrialopez/woocommerce-orders/pkg/httpclient"
)

// Stub describes one expected outgoing request and the synthetic response
// to answer it with. Matching is by method (empty matches any) plus a
// substring of the full URL.
type Stub struct {
	Method      string
	URLContains string
	Status      int
	Body        string
	Headers     map[string]string
}

// MockTransport implements http.RoundTripper over a fixed stub list.
// Install it with Install, which swaps the shared client's transport and
// returns a restore function:
//
//	mt := testkit.NewMockTransport(stubs...)
//	defer mt.Install()()
type MockTransport struct {
	mu    sync.Mutex
	stubs []stubEntry
	calls []*http.Request
}

type stubEntry struct {
	stub  Stub
	count int
}

// NewMockTransport builds a transport answering from the given stubs.
// The first matching stub wins; stubs are reusable across calls.
func NewMockTransport(stubs ...Stub) *MockTransport {
	mt := &MockTransport{}
	for _, s := range stubs {
		mt.stubs = append(mt.stubs, stubEntry{stub: s})
	}
	return mt
}

// Install swaps the shared outbound client's transport for mt and returns
// the function that restores the real one.
func (mt *MockTransport) Install() func() {
	httpclient.DefaultClient.Transport = mt
	return httpclient.ResetTransport
}

// RoundTrip answers the request from the stub list. An unmatched request is
// an error so tests fail loudly instead of hitting the network.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, req)

	for i := range mt.stubs {
		e := &mt.stubs[i]
		if e.stub.Method != "" && e.stub.Method != req.Method {
			continue
		}
		if e.stub.URLContains != "" && !strings.Contains(req.URL.String(), e.stub.URLContains) {
			continue
		}
		e.count++
		return buildResponse(req, e.stub), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing call %s %s", req.Method, req.URL)
}

// Calls returns every intercepted request in order.
func (mt *MockTransport) Calls() []*http.Request {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]*http.Request, len(mt.calls))
	copy(out, mt.calls)
	return out
}

// CallCount returns how many requests were intercepted in total.
func (mt *MockTransport) CallCount() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.calls)
}

// Unused returns a description of every stub that was never matched.
func (mt *MockTransport) Unused() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var out []string
	for _, e := range mt.stubs {
		if e.count == 0 {
			out = append(out, fmt.Sprintf("%s %s", e.stub.Method, e.stub.URLContains))
		}
	}
	return out
}

func buildResponse(req *http.Request, s Stub) *http.Response {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	for k, v := range s.Headers {
		header.Set(k, v)
	}

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(s.Body)),
		Request:    req,
	}
}
