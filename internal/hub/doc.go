// Package hub fetches a content hub and assembles its rows into an
// order-stable grid.
//
// A hub document lists rows ("components"). A row either carries its items
// inline or points at a collection endpoint through href. Assembly issues
// every collection fetch at once but commits rows strictly in document order:
// row i joins the grid only after rows 0..i have all resolved. Rows whose
// fetch fails or that resolve to zero items are omitted.
//
// # Main Types
//
//   - [Client]: HTTP retrieval of the hub and of individual collections
//   - [Assembly]: one assembly run; a pure state machine with no I/O
//   - [Assembler]: blocking driver that fans fetches out and feeds an Assembly
//   - [Grid]: the sealed, navigable result
//
// # Runs
//
// Every Assembly has a unique run ID. Event-loop drivers tag their fetch
// results with it so that a result arriving after a retry started a new run
// can be recognized and dropped.
//
// # Basic Usage
//
//	client, err := hub.NewClient(cfg.Hub.URL, hub.WithTimeout(cfg.Hub.RequestTimeout()))
//	doc, err := client.FetchHub(ctx)
//	grid, err := hub.NewAssembler(client).Assemble(ctx, doc, func(r hub.Row) {
//	    fmt.Println("committed", r.Name)
//	})
package hub
