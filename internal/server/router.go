package server

import (
	"context"
	"net/http"

	"luminadecor/internal/handlers"
	applog "luminadecor/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/login", handlers.Login)
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/logout", handlers.Logout)
	applog.Debug(context.Background(), "route registered", "path", "/logout")

	protected := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/app", handlers.App},
		{"/app/state", handlers.State},
		{"/app/upload", handlers.Upload},
		{"/app/event", handlers.Event},
		{"/app/budget", handlers.Budget},
		{"/app/analysis/cancel", handlers.CancelAnalysis},
		{"/app/back", handlers.Back},
		{"/app/reset", handlers.Reset},
		{"/app/close", handlers.Close},
		{"/app/history", handlers.History},
		{"/app/history/restore", handlers.RestoreHistory},
		{"/app/history/delete", handlers.DeleteHistory},
		{"/app/history/clear", handlers.ClearHistory},
		{"/app/settings", handlers.Settings},
		{"/app/settings/profile", handlers.UpdateProfile},
		{"/app/settings/toggle", handlers.ToggleSetting},
		{"/app/settings/currency", handlers.UpdateCurrency},
		{"/app/help", handlers.Help},
		{"/app/results/theme", handlers.SelectTheme},
		{"/app/results/step", handlers.Step},
		{"/app/results/variations", handlers.Variations},
	}
	for _, route := range protected {
		mux.Handle(route.path, handlers.RequireAuthentication(route.handler))
		applog.Debug(context.Background(), "route registered", "path", route.path, "protected", true)
	}

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
