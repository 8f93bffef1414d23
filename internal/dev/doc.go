// Package dev provides live reload for serving a static site during
// development.
//
// A polling Watcher monitors the static directory. Each change is
// forwarded to a ReloadServer, which tells every connected browser to
// reload the page or, for stylesheets, only the CSS.
//
// # Usage
//
//	rs := dev.NewReloadServer(logger)
//	w := dev.NewWatcher(dev.WatcherConfig{Paths: []string{"public"}})
//	w.OnChange(rs.Forward)
//
//	mux.HandleFunc(dev.ReloadPath, rs.HandleWebSocket)
//	go w.Start(ctx)
//
// HTML responses get ClientScript injected before </body>.
//
// # Reload Protocol
//
// The browser connects to /_styrene/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload", "file": "..."} // Triggers full page reload
//	{"type": "css", "file": "..."}    // Triggers CSS-only reload
package dev
