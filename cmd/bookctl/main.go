package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookshop/internal/config"
	"bookshop/internal/db"
	"bookshop/internal/domain"
	"bookshop/internal/importer"
	bookrepo "bookshop/internal/repository/book"
	userrepo "bookshop/internal/repository/user"
	catalogsvc "bookshop/internal/service/catalog"
	usersvc "bookshop/internal/service/user"
)

var csvPath string

var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Operator tooling for the bookshop database",
	Long: `bookctl talks straight to the bookshop database for chores the HTTP API
does not expose: listing and searching the catalog, bulk-importing books
from CSV, and creating accounts. The connection comes from DB_DSN.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Catalog operations",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every book in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBooksList(cmd.Context())
	},
}

var booksSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search book titles by case-insensitive substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBooksSearch(cmd.Context(), args[0])
	},
}

var booksImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import books from a CSV file",
	Long: `Import books from a CSV file with a header row naming the title, price
and description columns (any order, extra columns ignored).

Example:
  bookctl books import --file new_arrivals.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBooksImport(cmd.Context())
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Account operations",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an account, prompting for the password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersAdd(cmd.Context(), args[0])
	},
}

func init() {
	booksImportCmd.Flags().StringVar(&csvPath, "file", "", "Path to the CSV file")
	_ = booksImportCmd.MarkFlagRequired("file")

	booksCmd.AddCommand(booksListCmd, booksSearchCmd, booksImportCmd)
	usersCmd.AddCommand(usersAddCmd)
	rootCmd.AddCommand(booksCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg := config.FromEnv()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return pool, nil
}

func runBooksList(ctx context.Context) error {
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	books, err := catalogsvc.New(bookrepo.NewPostgres(pool, nil)).List(ctx)
	if err != nil {
		return err
	}
	printBooks(books)
	return nil
}

func runBooksSearch(ctx context.Context, query string) error {
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	books, err := catalogsvc.New(bookrepo.NewPostgres(pool, nil)).Search(ctx, query)
	if err != nil {
		return err
	}
	printBooks(books)
	return nil
}

func runBooksImport(ctx context.Context) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := importer.NewCSVImporter(f, bookrepo.NewPostgres(pool, nil)).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d books\n", n)
	return nil
}

func runUsersAdd(ctx context.Context, username string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	u, err := usersvc.New(userrepo.NewPostgres(pool, nil)).Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, usersvc.ErrDuplicateUsername) {
			return fmt.Errorf("user %q already exists", username)
		}
		return err
	}
	fmt.Printf("created user %q (id %d)\n", u.Username, u.ID)
	return nil
}

// readPassword reads a line from the terminal without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func printBooks(books []domain.Book) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", b.ID, b.Title, b.Price)
	}
	w.Flush()
}
