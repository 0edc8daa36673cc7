// Command smoke runs an end-to-end check of a running brocante server:
// create, read, search, partial update, cascade delete, and the error
// paths. Exits non-zero if any check fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hrhouma1/brocante/internal/client"
	"github.com/hrhouma1/brocante/internal/model"
)

type checker struct {
	passed, failed int
}

func (c *checker) check(name string, ok bool, detail string) {
	if ok {
		c.passed++
		fmt.Printf("  ok   %s\n", name)
		return
	}
	c.failed++
	fmt.Printf("  FAIL %s: %s\n", name, detail)
}

func main() {
	fs := flag.NewFlagSet("smoke", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:8000", "base URL of the running server")
	fs.Parse(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	api := client.New(*baseURL)
	c := &checker{}

	fmt.Printf("smoke testing %s\n", *baseURL)

	// Liveness.
	info, err := api.Root(ctx)
	c.check("GET /", err == nil && info["message"] != "", fmt.Sprintf("%v", err))
	if err != nil {
		fmt.Println("server unreachable, aborting")
		os.Exit(1)
	}

	// Unique email per run so smoke can rerun against a dirty database.
	email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())

	user, err := api.CreateUser(ctx, email, "Smoke", "Test")
	c.check("create user", err == nil && user != nil && user.Email == email, fmt.Sprintf("%v", err))
	if err != nil {
		report(c)
		return
	}

	// Duplicate email must be rejected.
	_, err = api.CreateUser(ctx, email, "Smoke", "Again")
	apiErr, ok := err.(*client.APIError)
	c.check("duplicate email rejected", ok && apiErr.Status == 400, fmt.Sprintf("%v", err))

	// Item creation with an exact integer price.
	item, err := api.CreateItem(ctx, user.ID, "Widget", "smoke test widget", 4999)
	c.check("create item", err == nil && item != nil, fmt.Sprintf("%v", err))

	if item != nil {
		got, err := api.GetItem(ctx, item.ID)
		c.check("price round-trip", err == nil && got != nil && got.Price == 4999 && got.OwnerID == user.ID,
			fmt.Sprintf("err=%v item=%+v", err, got))

		// Partial update: only availability changes.
		avail := false
		updated, err := api.UpdateItem(ctx, item.ID, model.ItemPatch{IsAvailable: &avail})
		c.check("partial item update", err == nil && updated != nil && !updated.IsAvailable &&
			updated.Title == "Widget" && updated.Price == 4999,
			fmt.Sprintf("err=%v item=%+v", err, updated))
	}

	// Search finds the item case-insensitively.
	results, err := api.SearchItems(ctx, "WIDG", 50)
	found := false
	for _, it := range results {
		if item != nil && it.ID == item.ID {
			found = true
		}
	}
	c.check("search finds item", err == nil && found, fmt.Sprintf("err=%v results=%d", err, len(results)))

	// Too-short query is rejected.
	_, err = api.SearchItems(ctx, "x", 50)
	apiErr, ok = err.(*client.APIError)
	c.check("short query rejected", ok && apiErr.Status == 400, fmt.Sprintf("%v", err))

	// Cascade delete reports the item count and leaves nothing behind.
	result, err := api.DeleteUser(ctx, user.ID)
	c.check("user delete cascades", err == nil && result != nil && result.DeletedItems == 1,
		fmt.Sprintf("err=%v result=%+v", err, result))

	if item != nil {
		_, err = api.GetItem(ctx, item.ID)
		c.check("item gone after cascade", client.IsNotFound(err), fmt.Sprintf("%v", err))
	}
	_, err = api.GetUser(ctx, user.ID)
	c.check("user gone after delete", client.IsNotFound(err), fmt.Sprintf("%v", err))

	report(c)
}

func report(c *checker) {
	fmt.Printf("%d passed, %d failed\n", c.passed, c.failed)
	if c.failed > 0 {
		os.Exit(1)
	}
}
