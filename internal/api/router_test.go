package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sinja33/RouteOptimize/internal/api/dto"
	"github.com/sinja33/RouteOptimize/internal/domain"
	"github.com/sinja33/RouteOptimize/internal/geo"
	"github.com/sinja33/RouteOptimize/internal/importer"
	"github.com/sinja33/RouteOptimize/internal/ports"
	"github.com/sinja33/RouteOptimize/internal/publish"
	"github.com/sinja33/RouteOptimize/internal/services"
)

// offlineRouter always fails, forcing every leg onto the estimated fallback.
type offlineRouter struct{}

func (offlineRouter) RouteLeg(ctx context.Context, from, to domain.Coordinates) (ports.RoadLeg, error) {
	return ports.RoadLeg{}, errors.New("offline")
}

type fixedGeocoder struct{}

func (fixedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return domain.Coordinates{Lat: 46.05, Lng: 14.5}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	params := services.Params{
		Depot:         domain.Coordinates{Lat: 46.0569, Lng: 14.5058},
		Model:         geo.NewModel(geo.DefaultCircuityFactor, geo.DefaultAvgSpeedKMH),
		ShiftStartMin: 480,
	}
	engine := &services.Optimizer{
		Assigners: []services.Assigner{
			services.NewDistanceFirst(params, 0),
			services.NewTimeFirst(params, 0),
		},
		Params: params,
	}
	refiner := &services.Refiner{
		Router:        offlineRouter{},
		Model:         params.Model,
		Depot:         params.Depot,
		ShiftStartMin: params.ShiftStartMin,
	}

	srv := httptest.NewServer(NewRouter(engine, refiner, importer.NewOrderImporter(fixedGeocoder{}), publish.NewHolder()))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestOptimizeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	we := 900
	req := dto.OptimizeRequest{
		Orders: []dto.OrderRequest{
			{ID: "O1", Lat: 46.0669, Lng: 14.5058, Weight: 5, WindowEnd: &we},
			{ID: "O2", Lat: 46.0769, Lng: 14.5058, Weight: 5},
		},
		Vehicles: []dto.VehicleRequest{
			{ID: "V1", Type: "van", MaxCapacity: 100, FuelType: "diesel"},
		},
	}

	resp := postJSON(t, srv.URL+"/api/optimize", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeBody[dto.OptimizeResponse](t, resp)

	if out.TotalOrders != 2 || out.TotalVehicles != 1 {
		t.Fatalf("totals = %d/%d, want 2/1", out.TotalOrders, out.TotalVehicles)
	}
	for _, name := range []string{"distanceFirst", "timeFirst"} {
		algo, ok := out.Algorithms[name]
		if !ok {
			t.Fatalf("missing algorithm %s", name)
		}
		if algo.Stats.AssignedOrders != 2 {
			t.Fatalf("%s assigned = %d, want 2", name, algo.Stats.AssignedOrders)
		}
		if len(algo.Routes) != 1 {
			t.Fatalf("%s routes = %d, want 1", name, len(algo.Routes))
		}
		route := algo.Routes[0]
		if len(route.RouteSegments) != len(route.Orders)+1 {
			t.Fatalf("%s segments = %d for %d stops", name, len(route.RouteSegments), len(route.Orders))
		}
		if route.DistanceType != domain.DistanceSourceEstimated {
			t.Fatalf("%s distanceType = %q, want estimated", name, route.DistanceType)
		}
	}
}

func TestOptimizeEndpointRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/optimize", dto.OptimizeRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp2, err := http.Post(srv.URL+"/api/optimize", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed JSON", resp2.StatusCode)
	}
}

func TestRecalculateEndpointFallsBack(t *testing.T) {
	srv := newTestServer(t)

	req := dto.RecalculateRequest{Routes: []dto.RouteResponse{{
		Vehicle: dto.VehicleRequest{ID: "V1", Type: "van", MaxCapacity: 100},
		Orders: []dto.StopResponse{
			{ID: "O1", Lat: 46.0669, Lng: 14.5058, Weight: 5, ArrivalTime: 485, OnTime: true},
		},
		TotalWeight:   5,
		TotalDistance: 2.9,
		Color:         "#ff3b4a",
		DistanceType:  domain.DistanceSourceEstimated,
	}}}

	resp := postJSON(t, srv.URL+"/api/recalculate-with-osrm", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeBody[dto.RecalculateResponse](t, resp)

	if len(out.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(out.Routes))
	}
	// The road router is down, so every leg keeps its estimate and the
	// response says so instead of failing.
	if out.Routes[0].DistanceType != domain.DistanceSourceEstimated {
		t.Fatalf("distanceType = %q, want estimated", out.Routes[0].DistanceType)
	}
	if out.OSRMStats.TotalRequests != 2 || out.OSRMStats.FailedRequests != 2 {
		t.Fatalf("osrmStats = %+v, want 2 failed of 2", out.OSRMStats)
	}
	if out.OSRMStats.SuccessRate != 0 {
		t.Fatalf("successRate = %v, want 0", out.OSRMStats.SuccessRate)
	}
	for _, seg := range out.Routes[0].RouteSegments {
		if !seg.Fallback {
			t.Fatal("fallback legs must be flagged")
		}
	}
	if out.Stats.AssignedOrders != 1 {
		t.Fatalf("stats assigned = %d, want 1", out.Stats.AssignedOrders)
	}
}

func TestRecalculateEndpointEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/recalculate-with-osrm", dto.RecalculateRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDriverFlow(t *testing.T) {
	srv := newTestServer(t)

	// Nothing published yet.
	resp, err := http.Get(srv.URL + "/api/driver/vehicles")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := decodeBody[[]dto.DriverVehicleResponse](t, resp); len(got) != 0 {
		t.Fatalf("expected no vehicles before publishing, got %v", got)
	}

	resp, err = http.Get(srv.URL + "/api/driver/route/V1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before publishing", resp.StatusCode)
	}

	// Publish a set.
	set := dto.SetRoutesRequest{
		Routes: []dto.RouteResponse{{
			Vehicle: dto.VehicleRequest{ID: "V1", Type: "van", MaxCapacity: 100},
			Orders: []dto.StopResponse{
				{ID: "O1", Lat: 46.0669, Lng: 14.5058, Weight: 5, ArrivalTime: 485, OnTime: true},
			},
			TotalWeight:   5,
			TotalDistance: 5.8,
			Color:         "#00d4ff",
			DistanceType:  domain.DistanceSourceRoad,
			RouteSegments: []dto.SegmentResponse{{
				From:     []float64{46.0569, 14.5058},
				To:       []float64{46.0669, 14.5058},
				Geometry: [][]float64{{46.0569, 14.5058}, {46.0669, 14.5058}},
				Distance: 2.9,
			}},
		}},
		Stats: dto.StatsResponse{TotalDistance: 5.8, AssignedOrders: 1, VehiclesUsed: 1},
	}
	resp = postJSON(t, srv.URL+"/api/driver/set-routes", set)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set-routes status = %d, want 200", resp.StatusCode)
	}

	// The summary list now shows the vehicle.
	resp, err = http.Get(srv.URL + "/api/driver/vehicles")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	vehicles := decodeBody[[]dto.DriverVehicleResponse](t, resp)
	if len(vehicles) != 1 {
		t.Fatalf("vehicles = %d, want 1", len(vehicles))
	}
	if vehicles[0].ID != "V1" || vehicles[0].Stops != 1 || vehicles[0].Distance != 5.8 {
		t.Fatalf("vehicle summary = %+v", vehicles[0])
	}

	// And the detail endpoint returns the full route with its segments.
	resp, err = http.Get(srv.URL + "/api/driver/route/V1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	route := decodeBody[dto.RouteResponse](t, resp)
	if route.Vehicle.ID != "V1" || len(route.Orders) != 1 {
		t.Fatalf("route detail = %+v", route)
	}
	if len(route.RouteSegments) != 1 || route.RouteSegments[0].Distance != 2.9 {
		t.Fatalf("route segments = %+v", route.RouteSegments)
	}

	// Unknown vehicles still 404.
	resp, err = http.Get(srv.URL + "/api/driver/route/V9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown vehicle", resp.StatusCode)
	}
}

func TestImportOrdersEndpoint(t *testing.T) {
	srv := newTestServer(t)

	csvBody := "id,lat,lng,weight\nI1,46.06,14.51,3\nI2,bad,14.52,1\n"
	resp, err := http.Post(srv.URL+"/api/import/orders", "text/csv", strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeBody[dto.ImportOrdersResponse](t, resp)

	if out.Imported != 1 || len(out.Orders) != 1 || out.Orders[0].ID != "I1" {
		t.Fatalf("import result = %+v", out)
	}
	if len(out.Rejected) != 1 || out.Rejected[0].Line != 3 {
		t.Fatalf("rejected = %+v, want line 3", out.Rejected)
	}
}

func TestImportOrdersEndpointNoLocation(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/import/orders", "text/csv", strings.NewReader("id,weight\nA,1\n"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/optimize")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}
