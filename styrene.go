// Package styrene serves a static site and HTTP handlers behind a
// path-pattern router.
//
// Routes are path templates compiled by pkg/pathpattern:
//
//	app := styrene.New(styrene.Config{
//	    Addr:   ":8080",
//	    Static: styrene.StaticConfig{Dir: "public", Fallback: "index.html"},
//	})
//	app.Get("/api/users/:id", showUser)
//	app.Get("/api/files{/*path}", listFiles)
//
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Static files are mounted after every other route, so handlers always
// win over files with the same path.
package styrene
