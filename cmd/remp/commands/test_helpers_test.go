package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

// recordedCall is a request received by fakeCRM.
type recordedCall struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

// fakeCRM answers CRM paths with canned bodies and records every call.
type fakeCRM struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeCRM(t *testing.T) *fakeCRM {
	t.Helper()

	crm := &fakeCRM{responses: make(map[string]cannedResponse)}
	crm.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		crm.mu.Lock()
		crm.calls = append(crm.calls, recordedCall{
			Method:        request.Method,
			Path:          request.URL.Path,
			Authorization: request.Header.Get("Authorization"),
			ContentType:   request.Header.Get("Content-Type"),
			Body:          string(body),
		})
		response, ok := crm.responses[request.URL.Path]
		crm.mu.Unlock()

		if !ok {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		writer.WriteHeader(response.status)
		_, _ = writer.Write([]byte(response.body))
	}))
	t.Cleanup(crm.Close)

	return crm
}

func (c *fakeCRM) respond(path string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.responses[path] = cannedResponse{status: status, body: body}
}

func (c *fakeCRM) last(t *testing.T) recordedCall {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.calls) == 0 {
		t.Fatal("no request recorded")
	}

	return c.calls[len(c.calls)-1]
}

func (c *fakeCRM) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.calls)
}

// setupCLI points viper at server with an isolated config file and session
// database. Tests using it share global viper state and cannot run in parallel.
func setupCLI(t *testing.T, server string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.SetConfigFile(filepath.Join(dir, "config.yml"))
	viper.Set(KeyServer, server)
	viper.Set(KeyToken, "api-token")
	viper.Set(KeySessionDB, filepath.Join(dir, constants.SessionFileName))
	viper.Set(KeyOutput, constants.FormatJSON)

	return dir
}

// runCommand executes cmd with args and returns what it printed.
func runCommand(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func decodeJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}

	err := json.Unmarshal([]byte(output), &decoded)
	if err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}

	return decoded
}
