package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

// tempStore creates a temporary darc catalog for examples.
func tempStore() (service.Service, func()) {
	dir, err := os.MkdirTemp("", "darc-example-*")
	if err != nil {
		panic(err)
	}
	cwd, _ := os.Getwd()
	home := os.Getenv("HOME")
	os.Setenv("HOME", dir)
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	if err := catalog.Init(false, "", false, ""); err != nil {
		panic(err)
	}
	svc, err := catalog.New("")
	if err != nil {
		panic(err)
	}
	cleanup := func() {
		svc.Close()
		_ = os.Chdir(cwd)
		os.Setenv("HOME", home)
		os.RemoveAll(dir)
	}
	return svc, cleanup
}

func Example_tree() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := catalog.WithUser(context.Background(), "alice")

	reports := &store.Node{Kind: store.KindCollection, Name: "Reports"}
	_ = svc.AddNode(ctx, reports)
	_ = svc.AddNode(ctx, &store.Node{Kind: store.KindCollection, Name: "2023 Reports", ParentID: &reports.ID})
	_ = svc.AddNode(ctx, &store.Node{Kind: store.KindCollection, Name: "Letters"})

	svc.SetIndent("  ")
	text, err := svc.Tree(ctx, store.KindCollection)
	if err != nil {
		panic(err)
	}
	fmt.Println(text)
	// Output:
	// Letters
	//
	// Reports
	//   2023 Reports
}

func Example_resolve() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := catalog.WithUser(context.Background(), "alice")

	coll := &store.Node{Kind: store.KindCollection, Name: "Reports"}
	_ = svc.AddNode(ctx, coll)
	_ = svc.AddDocument(ctx, &store.Document{Title: "Q1 Summary"}, []int64{coll.ID}, nil)

	// Slugs are derived from the title when not given.
	d, err := svc.Resolve(ctx, store.KindDocument, store.ParseKey("q1-summary"))
	if err != nil {
		panic(err)
	}
	doc := d.(*catalog.DocumentDetail)
	fmt.Println(doc.Document.Title)
	fmt.Println(doc.Collections[0].Name)

	// Without a user, document detail is refused.
	_, err = svc.Resolve(context.Background(), store.KindDocument, store.ParseKey("q1-summary"))
	fmt.Println(errors.Is(err, catalog.ErrUnauthenticated))
	// Output:
	// Q1 Summary
	// Reports
	// true
}

func Example_search() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := catalog.WithUser(context.Background(), "alice")

	coll := &store.Node{Kind: store.KindCollection, Name: "Annual Reports"}
	_ = svc.AddNode(ctx, coll)
	_ = svc.AddDocument(ctx, &store.Document{Title: "Field report"}, []int64{coll.ID}, nil)
	_ = svc.AddDocument(ctx, &store.Document{Title: "Letters"}, []int64{coll.ID}, nil)

	r, err := svc.Search(ctx, "REPORT", catalog.SearchOptions{})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(r.Collections), len(r.Documents), len(r.Terms))

	_, err = svc.Search(ctx, " ", catalog.SearchOptions{})
	fmt.Println(errors.Is(err, catalog.ErrInvalidQuery))
	// Output:
	// 1 1 0
	// true
}

func Example_list() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := catalog.WithUser(context.Background(), "alice")

	coll := &store.Node{Kind: store.KindCollection, Name: "Reports"}
	_ = svc.AddNode(ctx, coll)
	_ = svc.AddDocument(ctx, &store.Document{Title: "Q1"}, []int64{coll.ID}, nil)
	_ = svc.AddDocument(ctx, &store.Document{Title: "Q2"}, []int64{coll.ID}, nil)

	rows, _ := svc.List(ctx, store.KindDocument)
	for _, r := range rows {
		fmt.Println(r)
	}
	// Output:
	// 1 - Q1
	// 2 - Q2
}

func Example_transaction() {
	svc, cleanup := tempStore()
	defer cleanup()
	ctx := context.Background()

	// Use transaction for atomic operations on custom tables
	err := svc.Tx(ctx, func(tx *sql.Tx) error {
		// Real usage would be for extension tables, e.g.:
		// _, err := tx.Exec("INSERT INTO shelves (name) VALUES (?)", "A1")
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("Transaction completed")
	// Output:
	// Transaction completed
}
