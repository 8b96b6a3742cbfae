package casedesk

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zachmann/go-utils/duration"

	"github.com/casedesk/casedesk/api/caseapi"
	"github.com/casedesk/casedesk/storage"
)

func newTestCaseDesk(t *testing.T, opts *caseapi.Options) *CaseDesk {
	t.Helper()
	s, err := storage.NewStorage(
		storage.Config{
			Driver:  storage.DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewCaseDesk(ServerConf{AccessLog: io.Discard}, s.Backends(), opts)
}

func TestCaseDesk_ServesAPI(t *testing.T) {
	cd := newTestCaseDesk(t, nil)
	resp, err := cd.App().Test(httptest.NewRequest(http.MethodGet, APIBasePath+"/enums", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCaseDesk_UnknownRoute(t *testing.T) {
	cd := newTestCaseDesk(t, nil)
	resp, err := cd.App().Test(httptest.NewRequest(http.MethodGet, "/nothing/here", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body caseapi.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, caseapi.ErrorCodeNotFound, body.Error)
}

func TestCaseDesk_ImportDisabled(t *testing.T) {
	cd := newTestCaseDesk(t, &caseapi.Options{ImportEnabled: false})
	resp, err := cd.App().Test(httptest.NewRequest(http.MethodPost, APIBasePath+"/workbook/import", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCaseDesk_HttpHandlerFunc(t *testing.T) {
	cd := newTestCaseDesk(t, nil)
	rec := httptest.NewRecorder()
	cd.HttpHandlerFunc()(rec, httptest.NewRequest(http.MethodGet, APIBasePath+"/summary", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTimeoutsConf_Apply(t *testing.T) {
	conf := FiberServerConfig
	timeoutsConf{Read: duration.DurationOption(time.Second)}.apply(&conf)
	assert.Equal(t, time.Second, conf.ReadTimeout)
	assert.Equal(t, FiberServerConfig.WriteTimeout, conf.WriteTimeout)
	assert.Equal(t, FiberServerConfig.IdleTimeout, conf.IdleTimeout)
}
