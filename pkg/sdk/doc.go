// Package chainreach is the embedded Go SDK for the chainreach content
// platform. It connects directly to the content store and runs the same
// ranking and segmentation services the HTTP API uses, without going
// through the server.
//
// Typical use:
//
//	client, err := chainreach.New(chainreach.Config{
//		Addrs: []string{"localhost:6379"},
//	})
//	if err != nil { ... }
//	defer client.Close()
//
//	results, err := client.Search(ctx, "spring sale", chainreach.SearchOptions{TopK: 5})
package chainreach
