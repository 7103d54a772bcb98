package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  printbridge.prod  ": "printbridge.prod",
		"..foo..":              "foo",
		".":                    "",
		"":                     "",
	}
	for input, want := range tests {
		assert.Equal(t, want, sanitizePrefix(input), "input %q", input)
	}
}

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" print_job/result ": "print_job_result",
		"printer..reachable": "printer.reachable",
		"two  spaces":        "two__spaces",
		"a:b|c":              "a_b_c",
	}
	for input, want := range tests {
		assert.Equal(t, want, normalizeMetricName(input), "input %q", input)
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":       "prod",
		" service ": " printbridge ",
	}
	local := map[string]string{
		"result":  " succeeded ",
		"":        "ignored",
		"env":     "stage",
		"printer": "Zebra-1",
	}

	got := formatTags(global, local)
	assert.Equal(t, "|#env:stage,printer:Zebra-1,result:succeeded,service:printbridge", got)
	assert.Empty(t, formatTags(nil, nil))
}

func TestCloneTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	original := map[string]string{"env": "prod", "": "ignored"}
	cloned := cloneTags(original)
	cloned["env"] = "stage"

	assert.Equal(t, "prod", original["env"])
	assert.NotContains(t, cloned, "")
}

func TestFormatLine(t *testing.T) {
	t.Parallel()

	line := formatLine("printbridge", "print_job.duration", timingValue(1500*time.Microsecond), nil, map[string]string{"printer": "z1"})
	assert.Equal(t, "printbridge.print_job.duration:1.5|ms|#printer:z1", line)
	assert.Empty(t, formatLine("printbridge", "   ", countValue(1), nil, nil))
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{enabled: true, conn: clientConn}
	assert.True(t, client.Enabled())

	require.NoError(t, client.Close())
	assert.False(t, client.Enabled())
	require.NoError(t, client.Close())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	require.NoError(t, nilClient.Close())
	nilClient.Count("x", 1, nil)
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	client.Gauge("printer.reachable", 1, nil)
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd dial")
}

func TestClientWritesDatagram(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     "printbridge",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer client.Close()

	client.Count("print_job.result", 1, map[string]string{"result": "succeeded"})

	buf := make([]byte, 512)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "printbridge.print_job.result:1|c|#env:test,result:succeeded", string(buf[:n]))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.Count("print_job.result", 1, map[string]string{"result": "failed"})
	rec.Gauge("printer.reachable", 0, map[string]string{"printer": "z1"})
	rec.Timing("print_job.duration", 2*time.Millisecond, nil)

	assert.Equal(t, []string{
		"print_job.result:1|c|#result:failed",
		"printer.reachable:0|g|#printer:z1",
		"print_job.duration:2|ms",
	}, rec.Lines())
	assert.Len(t, rec.Find("printer.reachable"), 1)
	assert.Empty(t, rec.Find("missing"))
}
