package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/database"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/repository"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

func newLibraryCmd(app *cli) *cobra.Command {
	var criteria model.LibraryCriteria
	var file string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the library catalog",
		Example: `  chemctl library --free free --q acid
  chemctl library --category textbooks --level beginner`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			validator.Setup()
			if fields := validator.Validate(&criteria); fields != nil {
				return fmt.Errorf("invalid filters: %s", formatFields(fields))
			}

			ctx := cmd.Context()
			source := repository.LibrarySource(repository.NewFileLibraryRepository(app.cfg.LibraryPath))
			if file != "" {
				source = repository.NewFileLibraryRepository(file)
			} else if app.cfg.UsePostgresLibrary() {
				pool, err := database.NewPostgresPool(ctx, app.cfg, app.log)
				if err != nil {
					return fmt.Errorf("connect postgres: %w", err)
				}
				if pool == nil {
					return fmt.Errorf("LIBRARY_SOURCE=postgres requires DATABASE_URL")
				}
				defer pool.Close()
				source = repository.NewPostgresLibraryRepository(pool)
			}

			library := service.NewLibraryService(source, nil, app.log)
			if err := library.Load(ctx); err != nil {
				return fmt.Errorf("%s: %w", service.LibraryLoadError, err)
			}

			items, err := library.Filter(criteria)
			if err != nil {
				return err
			}
			printLibrary(cmd.OutOrStdout(), items)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", "", "read the catalog from this JSON file instead of the configured source")
	f.StringVar(&criteria.Category, "category", service.FilterAll, "category id")
	f.StringVar(&criteria.Level, "level", service.FilterAll, "difficulty level")
	f.StringVar(&criteria.Format, "format", service.FilterAll, "resource format")
	f.StringVar(&criteria.Free, "free", service.FilterAll, "all, free or premium")
	f.StringVar(&criteria.Search, "q", "", "search title, author, description and tags")
	return cmd
}

func printLibrary(out io.Writer, items []model.LibraryItemView) {
	if len(items) == 0 {
		fmt.Fprintf(out, "%s\n%s\n", service.LibraryNoResults, service.LibraryNoResultsHint)
		return
	}
	for _, it := range items {
		if it.Badge != "" {
			fmt.Fprintf(out, "[%s] ", it.Badge)
		}
		fmt.Fprintln(out, it.Title)
		if it.Author != "" {
			fmt.Fprintf(out, "    by %s\n", it.Author)
		}
		fmt.Fprintf(out, "    %s · %s · %s", it.CategoryName, it.Level, it.Format)
		if it.Stars != "" {
			fmt.Fprintf(out, " · %s", it.Stars)
		}
		fmt.Fprintln(out)
		if it.Link != "" {
			fmt.Fprintf(out, "    %s: %s\n", it.LinkText, it.Link)
		}
	}
	fmt.Fprintf(out, "\n%d resources\n", len(items))
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fields[k]
	}
	return strings.Join(parts, "; ")
}
