package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendlog/internal/cli"
	"spendlog/internal/core"
	"spendlog/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spendlog",
		Short: "Personal expense ledger",
		Long: `Records dated expenses with a category and description, keeps them in a
local ledger file and shows filtered lists and monthly summaries.`,
	}

	var (
		amount      string
		category    string
		date        string
		description string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Run: func(cmd *cobra.Command, args []string) {
			run(func(ctx context.Context, ledger *services.LedgerService) error {
				e, err := ledger.Add(ctx, amount, category, date, description)
				if err != nil {
					return err
				}
				fmt.Printf("Recorded %s %s on %s\n", e.Amount, e.Category, e.Date)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 12.50")
	addCmd.Flags().StringVar(&category, "category", "", "One of the fixed categories (see 'spendlog categories')")
	addCmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD")
	addCmd.Flags().StringVar(&description, "description", "", "Optional free-text description")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("date")

	var (
		filterCategory string
		filterMonth    int
		filterYear     int
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		Run: func(cmd *cobra.Command, args []string) {
			run(func(ctx context.Context, ledger *services.LedgerService) error {
				expenses := ledger.Query(services.Filter{
					Category: core.Category(filterCategory),
					Month:    filterMonth,
					Year:     filterYear,
				})
				printExpenses(expenses)
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&filterCategory, "category", "", "Only this category")
	listCmd.Flags().IntVar(&filterMonth, "month", 0, "Only this month (1-12)")
	listCmd.Flags().IntVar(&filterYear, "year", 0, "Only this year")

	var (
		summaryMonth int
		summaryYear  int
	)
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the monthly aggregate",
		Run: func(cmd *cobra.Command, args []string) {
			run(func(ctx context.Context, ledger *services.LedgerService) error {
				printSummary(ledger.MonthlySummary(summaryMonth, summaryYear))
				return nil
			})
		},
	}
	summaryCmd.Flags().IntVar(&summaryMonth, "month", 0, "Month (1-12), defaults to the current one")
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "Year, defaults to the current one")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the fixed category set",
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range core.Categories() {
				fmt.Println(c)
			}
		},
	}

	rootCmd.AddCommand(addCmd, listCmd, summaryCmd, categoriesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run bootstraps config, logging and the configured backend, hands the
// ledger to fn and releases the backend afterwards.
func run(fn func(context.Context, *services.LedgerService) error) {
	ctx := context.Background()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ledger, cleanup := cli.InitLedger(ctx, logger, cfg)

	err := fn(ctx, ledger)
	if cerr := cleanup(); cerr != nil {
		logger.Warn("Backend cleanup failed", "error", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printExpenses(expenses []core.Expense) {
	if len(expenses) == 0 {
		fmt.Println("No expenses found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Category, e.Amount, e.Description)
	}
	w.Flush()
}

func printSummary(s core.MonthSummary) {
	fmt.Printf("Summary for %04d-%02d\n", s.Year, s.Month)
	fmt.Printf("Total: %s over %d expense(s)\n", s.Total, s.Count)
	if s.Count == 0 {
		return
	}
	fmt.Println("By category:")
	for _, c := range summaryCategories(s) {
		fmt.Printf("  %s: %s\n", c, s.ByCategory[c])
	}
}

// summaryCategories orders the breakdown: fixed categories first, in display
// order, then any legacy categories carried over from older files.
func summaryCategories(s core.MonthSummary) []core.Category {
	var out []core.Category
	for _, c := range core.Categories() {
		if _, ok := s.ByCategory[c]; ok {
			out = append(out, c)
		}
	}
	var extras []core.Category
	known := make(map[core.Category]bool)
	for _, c := range out {
		known[c] = true
	}
	for c := range s.ByCategory {
		if !known[c] {
			extras = append(extras, c)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	return append(out, extras...)
}
