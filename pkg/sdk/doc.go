// Package catalog is a Go client for the catalog search API.
//
// The client pages through GET /api/products, keeps recent pages in an
// in-memory result cache and drives infinite scrolling:
//
//	client, _ := catalog.New("http://localhost:8080",
//	    catalog.WithAPIKey(os.Getenv("CATALOG_API_KEY")),
//	    catalog.WithCache(100, 5*time.Minute),
//	)
//	env, _ := client.Search(ctx, catalog.Filters{Query: "icons"}, 1)
//
//	s := catalog.NewScroller(client, catalog.Filters{Categories: []string{"fonts"}})
//	_ = s.LoadNext(ctx)
//	items := s.Items()
package catalog
