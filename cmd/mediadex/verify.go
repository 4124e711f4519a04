package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/pkg/title"
)

var verifyThreshold float64

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report likely duplicate titles in the catalog",
	Long: `Verify compares every pair of catalog titles with fuzzy matching
and reports pairs that look like the same movie indexed twice, usually
the result of inconsistent release naming.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Float64Var(&verifyThreshold, "threshold", 0.85, "Minimum similarity score to report")
	rootCmd.AddCommand(verifyCmd)
}

type duplicatePair struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	movies, err := store.ListMovies()
	if err != nil {
		return err
	}

	var pairs []duplicatePair
	for i := 0; i < len(movies); i++ {
		for j := i + 1; j < len(movies); j++ {
			// Same title in different years is a legitimate remake.
			if movies[i].Year != movies[j].Year && movies[i].Year != 0 && movies[j].Year != 0 {
				continue
			}
			score := title.Similarity(movies[i].Title, movies[j].Title)
			if score >= verifyThreshold {
				pairs = append(pairs, duplicatePair{
					A:     movies[i].Title,
					B:     movies[j].Title,
					Score: score,
				})
			}
		}
	}

	if jsonOutput {
		printJSON(map[string]any{
			"checked":    len(movies),
			"duplicates": pairs,
		})
		return nil
	}

	fmt.Printf("Checked %d titles\n\n", len(movies))
	if len(pairs) == 0 {
		fmt.Println("No likely duplicates.")
		return nil
	}
	for _, p := range pairs {
		fmt.Printf("  %.2f  %s  <->  %s\n", p.Score, p.A, p.B)
	}
	fmt.Printf("\n%d likely duplicate pairs. Rename the files and rescan.\n", len(pairs))
	return nil
}
