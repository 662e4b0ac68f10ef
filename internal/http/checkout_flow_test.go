package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"dukkan/internal/config"
	"dukkan/internal/http/handlers"
	"dukkan/internal/repos"
	"dukkan/internal/services"
)

func newStoreApp(t *testing.T) (*fiber.App, *repos.UserRepo) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", TransferDelay: time.Hour}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Verifier: services.MockVerifier{}}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, cfg, authSvc)
	t.Cleanup(deps.Sim.Stop)

	app.Get("/", deps.StoreHandler.Home)
	app.Get("/product/:id", deps.StoreHandler.Detail)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)

	return app, userRepo
}

func postForm(t *testing.T, app *fiber.App, path, sid, csrfTok, form string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+csrfTok+"&"+form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestBrowseAddCheckoutPlaceCardOrder(t *testing.T) {
	app, userRepo := newStoreApp(t)
	_ = userRepo.BindSession("sid-shop", "u-omar")

	// home page lists the seeded catalog
	respHome, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respHome.StatusCode != http.StatusOK {
		t.Fatalf("home expected 200, got %d", respHome.StatusCode)
	}
	csrfTok := extractCookie(respHome, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	home, _ := io.ReadAll(respHome.Body)
	if !strings.Contains(string(home), "Digital Cookbook") {
		t.Fatal("seeded product missing from home page")
	}

	// search narrows the grid
	respQ, err := app.Test(httptest.NewRequest("GET", "/?q=icon", nil))
	if err != nil {
		t.Fatal(err)
	}
	qBody, _ := io.ReadAll(respQ.Body)
	if !strings.Contains(string(qBody), "Artistic Icon Pack") || strings.Contains(string(qBody), "Digital Cookbook") {
		t.Fatalf("search filter not applied: %s", qBody)
	}

	// add to cart and verify the total
	respAdd := postForm(t, app, "/cart", "sid-shop", csrfTok, "productId=prod-cookbook&qty=2")
	if respAdd.StatusCode != http.StatusFound {
		t.Fatalf("add-to-cart expected redirect, got %d", respAdd.StatusCode)
	}
	reqCart := httptest.NewRequest("GET", "/cart", nil)
	reqCart.AddCookie(&http.Cookie{Name: "sid", Value: "sid-shop"})
	respCart, err := app.Test(reqCart)
	if err != nil {
		t.Fatal(err)
	}
	cartBody, _ := io.ReadAll(respCart.Body)
	if !strings.Contains(string(cartBody), "31.98") {
		t.Fatalf("cart total missing: %s", cartBody)
	}

	// place a card order; should land on the order page via redirect
	respPlace := postForm(t, app, "/orders", "sid-shop", csrfTok, "payment_method=card")
	if respPlace.StatusCode != http.StatusFound {
		t.Fatalf("place expected redirect, got %d", respPlace.StatusCode)
	}
	loc := respPlace.Header.Get("Location")
	if !strings.HasPrefix(loc, "/order/") {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	reqOrder := httptest.NewRequest("GET", loc, nil)
	reqOrder.AddCookie(&http.Cookie{Name: "sid", Value: "sid-shop"})
	respOrder, err := app.Test(reqOrder)
	if err != nil {
		t.Fatal(err)
	}
	orderBody, _ := io.ReadAll(respOrder.Body)
	if !strings.Contains(string(orderBody), "COMPLETED") || !strings.Contains(string(orderBody), "Download your purchase") {
		t.Fatalf("card order page should show completion and download link: %s", orderBody)
	}
}

func TestPlaceOrderAnonymousRedirectsToLogin(t *testing.T) {
	app, _ := newStoreApp(t)

	respHome, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	csrfTok := extractCookie(respHome, "csrf_")

	resp := postForm(t, app, "/orders", "", csrfTok, "payment_method=card")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected /login redirect, got %q", loc)
	}
}

func TestPlaceOrderRejectsBadPaymentMethod(t *testing.T) {
	app, userRepo := newStoreApp(t)
	_ = userRepo.BindSession("sid-pm", "u-omar")

	respHome, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	csrfTok := extractCookie(respHome, "csrf_")

	resp := postForm(t, app, "/orders", "sid-pm", csrfTok, "payment_method=cheque")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
