// Package static serves files from a directory or an S3 bucket.
//
// The handler is meant to be mounted on a router wildcard route:
//
//	h := static.New(static.Config{
//	    Source:   static.NewDirSource(os.DirFS("public")),
//	    Fallback: "index.html",
//	})
//	r.Handle("GET", "/assets{/*path}", h)
//
// Requests for a directory without a trailing slash are redirected to
// the slash form; with the slash, the directory's index file is served.
// Directory listings are never generated. When Fallback is set, misses
// from clients that accept HTML get the fallback file, which suits
// single-page applications.
package static
