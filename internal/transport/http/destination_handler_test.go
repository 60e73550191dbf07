package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

func TestParseDestinationQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/destinations?q=%20falls%20&category=Nature&tag=hike&page=2&limit=25", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	query, err := parseDestinationQuery(c)
	if err != nil {
		t.Fatalf("parseDestinationQuery returned error: %v", err)
	}
	if query.Query != "falls" {
		t.Fatalf("expected query 'falls', got %q", query.Query)
	}
	if query.Category != "Nature" || query.Tag != "hike" {
		t.Fatalf("unexpected category/tag: %q %q", query.Category, query.Tag)
	}
	if query.Page != 2 || query.Limit != 25 {
		t.Fatalf("expected page 2 limit 25, got %d %d", query.Page, query.Limit)
	}
}

func TestParseDestinationQueryInvalidPage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/destinations?page=two", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if _, err := parseDestinationQuery(c); err == nil {
		t.Fatal("expected error for non-numeric page, got nil")
	}
}

func TestDestinationRequestIgnoresAverageRating(t *testing.T) {
	e := echo.New()
	body := `{"name":"Taal","photos":{"main":"https://cdn.example/taal.jpg","others":["a","b"]},` +
		`"geo":{"lat":14.0,"lng":121.0},"category":"Nature","averageRating":4.9}`
	req := httptest.NewRequest(http.MethodPost, "/api/destinations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var dto DestinationRequest
	if err := c.Bind(&dto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	in := dto.toInput()
	if err := in.Validate(false); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if in.PhotoMain == nil || *in.PhotoMain != "https://cdn.example/taal.jpg" {
		t.Fatalf("photos.main not mapped: %v", in.PhotoMain)
	}
	if in.PhotoOthers == nil || len(*in.PhotoOthers) != 2 {
		t.Fatalf("photos.others not mapped: %v", in.PhotoOthers)
	}
	if in.Latitude == nil || *in.Latitude != 14.0 || in.Longitude == nil || *in.Longitude != 121.0 {
		t.Fatalf("geo not mapped: %v %v", in.Latitude, in.Longitude)
	}
}

func TestDestinationRequestWithoutGeoIsPartial(t *testing.T) {
	name := "Renamed"
	in := DestinationRequest{Name: &name}.toInput()
	if in.Latitude != nil || in.PhotoMain != nil {
		t.Fatal("absent nested objects must leave fields untouched")
	}
	if err := in.Validate(true); err != nil {
		t.Fatalf("expected partial update to validate, got %v", err)
	}
}

func TestToDestinationResponseNestsPhotosAndGeo(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &domain.Destination{
		ID:            uuid.New(),
		Name:          "Mayon",
		PhotoMain:     "main.jpg",
		Latitude:      13.25,
		Longitude:     123.68,
		Category:      domain.CategoryAdventure,
		AverageRating: 4.5,
		Tags:          pq.StringArray{"volcano"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	resp := toDestinationResponse(d)
	if resp.Photos.Main != "main.jpg" {
		t.Fatalf("expected main photo, got %q", resp.Photos.Main)
	}
	if resp.Photos.Others == nil || len(resp.Photos.Others) != 0 {
		t.Fatalf("expected empty others slice, got %#v", resp.Photos.Others)
	}
	if resp.Geo.Lat != 13.25 || resp.Geo.Lng != 123.68 {
		t.Fatalf("unexpected geo %+v", resp.Geo)
	}
	if resp.AverageRating != 4.5 {
		t.Fatalf("expected average 4.5, got %v", resp.AverageRating)
	}
}

func TestToRatingResponseIncludesAuthor(t *testing.T) {
	name, email := "Ana", "ana@example.com"
	r := &domain.Rating{ID: uuid.New(), UserID: uuid.New(), Rating: 4, UserName: &name, UserEmail: &email}

	resp := toRatingResponse(r)
	if resp.User == nil || resp.User.Name != "Ana" || resp.User.ID != r.UserID {
		t.Fatalf("expected populated author, got %+v", resp.User)
	}
	if resp.Destination != nil {
		t.Fatal("destination must be omitted when not joined")
	}
	if resp.Media == nil {
		t.Fatal("media must serialize as an empty list")
	}
}
