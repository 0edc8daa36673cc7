// Command seed loads, inspects, or clears sample data in a brocante
// database. Usage: seed [-db path] <add|clear|status|reset>
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/hrhouma1/brocante/internal/db"
	"github.com/hrhouma1/brocante/internal/store"
)

type seedUser struct {
	email     string
	lastName  string
	firstName string
	active    bool
	items     []seedItem
}

type seedItem struct {
	title       string
	description string
	price       int64 // cents
	available   bool
}

var seedUsers = []seedUser{
	{
		email: "alice.martin@example.com", lastName: "Martin", firstName: "Alice", active: true,
		items: []seedItem{
			{"iPhone 15 Pro", "256GB, natural titanium, still under warranty.", 120000, true},
			{"MacBook Pro 16", "M3, 32GB RAM, 1TB SSD. Six months of light use.", 280000, true},
			{"AirPods Pro 2", "Noise cancelling earbuds with charging case.", 25000, false},
		},
	},
	{
		email: "bob.wilson@example.com", lastName: "Wilson", firstName: "Bob", active: true,
		items: []seedItem{
			{"Electric mountain bike", "500Wh battery, 80km range. Very good condition.", 180000, true},
			{"PlayStation 5", "Disc edition, two controllers, five games included.", 55000, true},
		},
	},
	{
		email: "claire.dubois@example.com", lastName: "Dubois", firstName: "Claire", active: true,
		items: []seedItem{
			{"Vintage oak desk", "Solid oak, 1960s, some wear on the top.", 35000, true},
		},
	},
	{
		email: "david.bernard@example.com", lastName: "Bernard", firstName: "David", active: false,
	},
	{
		email: "emma.petit@example.com", lastName: "Petit", firstName: "Emma", active: true,
		items: []seedItem{
			{"Canon EOS R6", "Mirrorless camera body, 12k shutter count.", 145000, true},
			{"Camera tripod", "", 4000, true},
		},
	},
}

func main() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := fs.String("db", "brocante.sqlite3", "path to SQLite database file")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: seed [-db path] <add|clear|status|reset>")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch fs.Arg(0) {
	case "add":
		err = add(ctx, database)
	case "clear":
		err = clear(ctx, database)
	case "status":
		err = status(ctx, database)
	case "reset":
		if err = clear(ctx, database); err == nil {
			err = add(ctx, database)
		}
	default:
		fs.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func add(ctx context.Context, database *sql.DB) error {
	users, items := 0, 0
	for _, su := range seedUsers {
		if existing, err := store.GetUserByEmail(ctx, database, su.email); err != nil {
			return err
		} else if existing != nil {
			fmt.Printf("skipping %s (already present)\n", su.email)
			continue
		}

		user, err := store.CreateUser(ctx, database, su.email, su.lastName, su.firstName, su.active)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", su.email, err)
		}
		users++

		for _, si := range su.items {
			if _, err := store.CreateItem(ctx, database, user.ID, si.title, si.description, si.price, si.available); err != nil {
				return fmt.Errorf("seeding item %q: %w", si.title, err)
			}
			items++
		}
	}
	fmt.Printf("seeded %d user(s) and %d item(s)\n", users, items)
	return nil
}

func clear(ctx context.Context, database *sql.DB) error {
	// Items first, though the cascade would handle them anyway.
	if _, err := database.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	if _, err := database.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clearing users: %w", err)
	}
	fmt.Println("all users and items removed")
	return nil
}

func status(ctx context.Context, database *sql.DB) error {
	var users, items int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&items); err != nil {
		return fmt.Errorf("counting items: %w", err)
	}
	fmt.Printf("%d user(s), %d item(s)\n", users, items)
	return nil
}
