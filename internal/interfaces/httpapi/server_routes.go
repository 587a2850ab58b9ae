package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler, auth Middleware) {
	mux.Handle("GET /rpc/fixture.all", auth(http.HandlerFunc(handler.FixtureAll)))
	mux.Handle("GET /rpc/fixture.byId", auth(http.HandlerFunc(handler.FixtureByID)))
	mux.Handle("GET /rpc/fixture.upcoming", auth(http.HandlerFunc(handler.FixtureUpcoming)))
	mux.Handle("GET /rpc/fixture.recent", auth(http.HandlerFunc(handler.FixtureRecent)))
	mux.Handle("GET /rpc/fixture.details", auth(http.HandlerFunc(handler.FixtureDetails)))
	mux.Handle("GET /rpc/fixture.roster", auth(http.HandlerFunc(handler.FixtureRoster)))
	mux.Handle("POST /rpc/fixture.setAvailability", auth(http.HandlerFunc(handler.SetAvailability)))
}
