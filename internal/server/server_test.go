package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudscope/cloudscope/pkg/render"
	"github.com/cloudscope/cloudscope/pkg/session"
)

const webTierJSON = `{
  "metadata": {"ingestion_time": "2026-08-01T10:00:00Z", "regions_scanned": ["eu-west-1"]},
  "regional_services": {
    "eu-west-1": {
      "ec2": {
        "vpcs": [{"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16",
                  "Tags": [{"Key": "Name", "Value": "main"}]}],
        "security_groups": [
          {"GroupId": "sg-web", "GroupName": "web-sg", "VpcId": "vpc-1"}
        ]
      },
      "rds": {"db_instances": [{"DBInstanceIdentifier": "orders", "Engine": "postgres"}]}
    }
  }
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(session.New(), render.NewExporter(nil), nil)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
}

func TestUploadAndGraph(t *testing.T) {
	s := testServer(t)

	rec := post(t, s, "/api/sources?name=prod.json", webTierJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var added struct {
		TotalNodes int `json:"total_nodes"`
	}
	decode(t, rec, &added)
	if added.TotalNodes != 3 {
		t.Errorf("total_nodes = %d, want 3", added.TotalNodes)
	}

	rec = get(t, s, "/api/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("graph status = %d", rec.Code)
	}
	var body struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	decode(t, rec, &body)
	if len(body.Nodes) != 3 {
		t.Errorf("graph nodes = %d, want 3", len(body.Nodes))
	}
}

func TestUploadRejectsMalformed(t *testing.T) {
	s := testServer(t)

	rec := post(t, s, "/api/sources", `{"bogus": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Code string `json:"code"`
	}
	decode(t, rec, &body)
	if body.Code != "INGESTION_FAILED" {
		t.Errorf("code = %s", body.Code)
	}
}

func TestGraphFilterParams(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := get(t, s, "/api/graph?services=rds")
	var body struct {
		Nodes []struct {
			Service string `json:"service"`
		} `json:"nodes"`
		Edges []any `json:"edges"`
	}
	decode(t, rec, &body)
	if len(body.Nodes) != 1 || body.Nodes[0].Service != "rds" {
		t.Errorf("filtered nodes = %+v", body.Nodes)
	}

	// The sentinel deselects everything; distinct from an absent parameter.
	rec = get(t, s, "/api/graph?services=_none_")
	decode(t, rec, &body)
	if len(body.Nodes) != 0 {
		t.Errorf("_none_ projected %d nodes", len(body.Nodes))
	}
}

func TestFiltersEndpoint(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := get(t, s, "/api/filters")
	var body struct {
		Services struct {
			Available []string `json:"available"`
			Active    []string `json:"active"`
		} `json:"services"`
	}
	decode(t, rec, &body)
	if len(body.Services.Available) != 2 || len(body.Services.Active) != 2 {
		t.Errorf("filters = %+v", body)
	}

	rec = post(t, s, "/api/filters", `{"services": ["ec2"]}`)
	decode(t, rec, &body)
	if len(body.Services.Active) != 1 || body.Services.Active[0] != "ec2" {
		t.Errorf("active after set = %v", body.Services.Active)
	}
}

func TestRemoveSourceOutOfRange(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	req := httptest.NewRequest(http.MethodDelete, "/api/sources/5", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestNodeDetail(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := get(t, s, "/api/node/vpc:vpc-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d struct {
		Label string `json:"label"`
	}
	decode(t, rec, &d)
	if d.Label != "main (10.0.0.0/16)" {
		t.Errorf("label = %q", d.Label)
	}

	if rec := get(t, s, "/api/node/ghost"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown node status = %d, want 404", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := get(t, s, "/api/search?q=web")
	var res struct {
		Matches []string `json:"matches"`
	}
	decode(t, rec, &res)
	if len(res.Matches) != 1 || res.Matches[0] != "sg:sg-web" {
		t.Errorf("matches = %v", res.Matches)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := post(t, s, "/api/layout", `{"mode": "hierarchical"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var plan struct {
		Mode  string   `json:"mode"`
		Roots []string `json:"roots"`
	}
	decode(t, rec, &plan)
	if plan.Mode != "hierarchical" || len(plan.Roots) == 0 {
		t.Errorf("plan = %+v", plan)
	}

	if rec := post(t, s, "/api/layout", `{"mode": "spiral"}`); rec.Code != http.StatusConflict {
		t.Errorf("unknown mode status = %d, want 409", rec.Code)
	}
}

func TestExportDOT(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)

	rec := get(t, s, "/api/export?format=dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "digraph cloudscope") {
		t.Errorf("body = %.60s", rec.Body.String())
	}
}

func TestClearEndpoint(t *testing.T) {
	s := testServer(t)
	post(t, s, "/api/sources", webTierJSON)
	post(t, s, "/api/clear", "")

	rec := get(t, s, "/api/sources")
	var body struct {
		Sources []any `json:"sources"`
	}
	decode(t, rec, &body)
	if len(body.Sources) != 0 {
		t.Errorf("sources after clear = %d", len(body.Sources))
	}
}

func TestHealthAndVersion(t *testing.T) {
	s := testServer(t)
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
	if rec := get(t, s, "/version"); rec.Code != http.StatusOK {
		t.Errorf("version = %d", rec.Code)
	}
}
