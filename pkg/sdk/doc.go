// Package knwl embeds the tenant-isolated document store in a Go program,
// without the HTTP layer.
//
//	client, err := knwl.New(ctx, knwl.WithPath("./data/app.db"))
//	if err != nil { ... }
//	defer client.Close()
//
//	res, _ := client.Documents("t1").Ingest(ctx, knwl.Document{
//	    Title:   "Doc One",
//	    Content: "Hello world",
//	    Tags:    []string{"hello"},
//	})
//	page, _ := client.Search("t1").Query(ctx, knwl.SearchRequest{Query: "hello", Limit: 5})
//
// Every operation is scoped to one tenant; documents of other tenants are
// never visible.
package knwl
