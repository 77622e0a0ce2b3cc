package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
	"github.com/joseluisinigo/logonhours/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	applyErrFor string
}

func (f *fakeUseCase) EncodeRanges(specs []in.RangeSpec) (domain.LogonHours, []string, error) {
	// The real encoder: the controller contract is what is under test,
	// not the encoding itself.
	builder := services.NewScheduleBuilder()
	var advisories []string
	for _, spec := range specs {
		entry, minutesIgnored, err := builder.AddRange(spec.Days, spec.Start, spec.End)
		if err != nil {
			return domain.LogonHours{}, nil, err
		}
		if minutesIgnored {
			advisories = append(advisories, entry.String())
		}
	}
	return services.Encode(builder.Entries()), advisories, nil
}

func (f *fakeUseCase) ListOrganizationalUnits(ctx context.Context) ([]domain.OrganizationalUnit, error) {
	return []domain.OrganizationalUnit{{DN: "ou=it,dc=corp", Name: "it"}}, nil
}

func (f *fakeUseCase) ListAccounts(ctx context.Context, ouDN string) ([]domain.Account, error) {
	return []domain.Account{{DN: "cn=alice," + ouDN, SAMAccountName: "alice"}}, nil
}

func (f *fakeUseCase) Apply(ctx context.Context, accountDNs []string, hours domain.LogonHours) []domain.ApplyResult {
	results := make([]domain.ApplyResult, len(accountDNs))
	for i, dn := range accountDNs {
		results[i] = domain.ApplyResult{AccountDN: dn}
		if dn == f.applyErrFor {
			results[i].Err = context.DeadlineExceeded
		}
	}
	return results
}

func newTestRouter(useCase in.ScheduleUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "tester", Password: "secret"},
	}

	router := gin.New()
	NewScheduleController(useCase, cfg).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.SetBasicAuth("tester", "secret")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEncodeScheduleEndpoint(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	rec := doRequest(router, http.MethodPost, "/api/v1/schedule/encode",
		`{"ranges":[{"days":"M-F","start":"9","end":"17"}]}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		LogonHours string `json:"logonHours"`
		Hex        string `json:"hex"`
		AllDeny    bool   `json:"allDeny"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.AllDeny)
	assert.Len(t, resp.Hex, domain.LogonHoursBytes*2)
	assert.NotEmpty(t, resp.LogonHours)
}

func TestEncodeScheduleEndpointEmptyRangesIsAllDeny(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	rec := doRequest(router, http.MethodPost, "/api/v1/schedule/encode",
		`{"ranges":[]}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AllDeny bool `json:"allDeny"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.AllDeny)
}

func TestEncodeScheduleEndpointRejectsBadRanges(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	for _, body := range []string{
		`{"ranges":[{"days":"Lunes","start":"9","end":"17"}]}`,
		`{"ranges":[{"days":"M","start":"17","end":"9"}]}`,
		`{"ranges":[{"days":"M","start":"nope","end":"9"}]}`,
	} {
		rec := doRequest(router, http.MethodPost, "/api/v1/schedule/encode", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestApplyScheduleEndpointReportsPerAccount(t *testing.T) {
	router := newTestRouter(&fakeUseCase{applyErrFor: "cn=bob,ou=it,dc=corp"})

	rec := doRequest(router, http.MethodPost, "/api/v1/schedule/apply",
		`{"accounts":["cn=alice,ou=it,dc=corp","cn=bob,ou=it,dc=corp"],`+
			`"ranges":[{"days":"M-F","start":"9","end":"17"}]}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Applied int `json:"applied"`
		Failed  int `json:"failed"`
		Results []struct {
			Account string `json:"account"`
			OK      bool   `json:"ok"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].OK)
	assert.False(t, resp.Results[1].OK)
}

func TestEndpointsRequireBasicAuth(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	rec := doRequest(router, http.MethodGet, "/api/v1/directory/ous", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/directory/ous", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAccountsEndpointRequiresOU(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	rec := doRequest(router, http.MethodGet, "/api/v1/directory/accounts", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/directory/accounts?ou=ou%3Dit%2Cdc%3Dcorp", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
}
