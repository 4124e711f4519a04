package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/catalog"
	"github.com/mediadex/mediadex/internal/library"
)

var (
	listCategory string
	listSearch   string
	listSeries   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog with category and search filters",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "all", "Category filter (all, kids, horror, asian, movies)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive title substring")
	listCmd.Flags().BoolVar(&listSeries, "series", false, "List series instead of movies")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if listSeries {
		return listSeriesCatalog(store)
	}

	category, ok := library.ParseCategory(listCategory)
	if !ok {
		return fmt.Errorf("unknown category %q (valid: %s)", listCategory, categoryNames())
	}

	movies, err := store.ListMovies()
	if err != nil {
		return err
	}

	filtered := library.Apply(movies, category, listSearch, filterPolicy(cfg))

	if jsonOutput {
		printJSON(filtered)
		return nil
	}

	if len(filtered) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, m := range filtered {
		year := ""
		if m.Year > 0 {
			year = fmt.Sprintf(" (%d)", m.Year)
		}
		fmt.Printf("%s%s\n    %s\n", m.Title, year, m.FilePath)
	}
	fmt.Printf("\n%d of %d movies\n", len(filtered), len(movies))
	return nil
}

func listSeriesCatalog(store *catalog.Store) error {
	series, err := store.ListSeries()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(series)
		return nil
	}

	if len(series) == 0 {
		fmt.Println("No series in catalog.")
		return nil
	}
	for _, s := range series {
		episodes := 0
		for _, season := range s.Seasons {
			episodes += len(season.Episodes)
		}
		fmt.Printf("%s  (%d seasons, %d episodes)\n", s.Title, len(s.Seasons), episodes)
	}
	return nil
}

func categoryNames() string {
	names := make([]string, len(library.Categories))
	for i, c := range library.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
