package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modelregistry/internal/blob"
	"modelregistry/internal/core"
	"modelregistry/pkg/domain"
)

func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := core.OpenStore(ctx, a.cfg.Storage, a.log)
			if err != nil {
				return err
			}
			defer store.Close()

			applied, err := store.Migrate(ctx)
			if err != nil {
				return err
			}
			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), schema version %d\n", applied, version)
			return nil
		},
	}
}

func statsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd.Context(), func(svc *core.Service) error {
				stats, err := svc.GetStatistics(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func searchCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search model names, display names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd.Context(), func(svc *core.Service) error {
				models, err := svc.Search(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				return writeModels(cmd.OutOrStdout(), models)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (config default when 0)")
	return cmd
}

func listCommand(a *app) *cobra.Command {
	var (
		opts      domain.QueryOptions
		modelType string
		official  bool
		sortBy    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List models one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if modelType != "" {
				t, ok := domain.ParseModelType(modelType)
				if !ok {
					return fmt.Errorf("unknown model type %q", modelType)
				}
				opts.Filter.ModelType = &t
			}
			if cmd.Flags().Changed("official") {
				opts.Filter.Official = &official
			}
			opts.SortBy = domain.SortField(sortBy)

			return a.withService(cmd.Context(), func(svc *core.Service) error {
				page, err := svc.ListModels(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if err := writeModels(cmd.OutOrStdout(), page.Items); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "total %d, more %t\n", page.TotalCount, page.HasMore)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Offset, "offset", 0, "rows to skip")
	f.IntVar(&opts.Limit, "limit", domain.DefaultPageLimit, "page size")
	f.StringVar(&opts.Filter.Search, "search", "", "substring filter")
	f.StringVar(&modelType, "type", "", "model type filter")
	f.StringVar(&opts.Filter.Provider, "provider", "", "provider filter")
	f.BoolVar(&official, "official", false, "only official (or, with =false, unofficial) models")
	f.StringSliceVar(&opts.Filter.Tags, "tag", nil, "required tag (repeatable)")
	f.StringVar(&sortBy, "sort", string(domain.SortCreatedAt), "created_at, name, file_size or download_count")
	f.BoolVar(&opts.Ascending, "asc", false, "ascending order")
	return cmd
}

func cleanupCommand(a *app) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Report installations whose model is gone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd.Context(), func(svc *core.Service) error {
				report, err := svc.CleanupOrphanedData(cmd.Context(), remove)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "delete orphaned installations")
	return cmd
}

func exportCommand(a *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a catalog snapshot to blob storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := blob.Open(ctx, a.cfg.Blob)
			if err != nil {
				return err
			}
			return a.withService(ctx, func(svc *core.Service) error {
				info, err := svc.ExportCatalog(ctx, store, key)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), info)
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "object key (catalog/<timestamp>.json when empty)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeModels(w io.Writer, models []domain.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tSIZE\tPROVIDER\tTAGS")
	for _, m := range models {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Name, m.Version, m.ModelType, m.SizeCategory, m.Provider, strings.Join(m.Tags, ","))
	}
	return tw.Flush()
}
