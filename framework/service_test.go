package framework

import (
	"bytes"
	"io"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitServiceAcceptsAnyResponse(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(500))
	defer server.Close()

	var output bytes.Buffer
	require.NoError(t, AwaitService(server.URL, time.Second, &output))
	assert.Contains(t, output.String(), "Service responded with status 500")
}

func TestAwaitServiceTimesOutWhenServiceIsUnreachable(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	start := time.Now()
	err := AwaitService(url, time.Millisecond*200, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, int64(time.Since(start)), int64(time.Second*2))
}

func TestAwaitServiceTimesOutWhenServiceNeverAnswers(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		var conns []net.Conn
		defer func() {
			for _, c := range conns {
				_ = c.Close()
			}
		}()
		for {
			c, err := listener.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c) // accepted but never answered
		}
	}()

	result := make(chan error, 1)
	go func() {
		result <- AwaitService("http://"+listener.Addr().String(), time.Millisecond*200, io.Discard)
	}()
	select {
	case err := <-result:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out")
	case <-time.After(time.Second * 3):
		require.Fail(t, "AwaitService did not give up after its timeout")
	}
}
