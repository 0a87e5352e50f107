package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"barrierfree/internal/catalog"
	"barrierfree/internal/config"
	"barrierfree/internal/download"
	"barrierfree/internal/models"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the resource catalog",
		Long:  "Searches, shows and validates catalog records using the source selected by CATALOG_SOURCE.",
	}
	cmd.AddCommand(
		newCatalogSearchCmd(),
		newCatalogShowCmd(),
		newCatalogCategoriesCmd(),
		newCatalogValidateCmd(),
		newCatalogCheckDownloadsCmd(),
	)
	return cmd
}

// withService opens the configured catalog and runs fn against it.
func withService(cfg *config.Config, fn func(ctx context.Context, svc *catalog.Service) error) error {
	ctx := context.Background()

	src, closeCatalog, err := openCatalog(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer closeCatalog()

	return fn(ctx, catalog.NewService(src))
}

func newCatalogSearchCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter videos and documents",
		Long:  "Matches the query case-insensitively against titles and descriptions, optionally within one category.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{Category: category}
			if len(args) == 1 {
				q.Text = args[0]
			}
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			return withService(cfg, func(ctx context.Context, svc *catalog.Service) error {
				res, err := svc.Search(ctx, q)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				return writeResults(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", catalog.AllCategories, "Category to filter by")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

// writeResults prints one row per matching record.
func writeResults(w io.Writer, res *catalog.Results) error {
	if res.Empty() {
		_, err := fmt.Fprintln(w, "no resources found matching your search criteria")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tCATEGORY\tTITLE")
	for _, v := range res.Videos {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.Kind(), v.ID, v.Category, v.Title)
	}
	for _, d := range res.Documents {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Kind(), d.ID, d.Category, d.Title)
	}
	return tw.Flush()
}

func newCatalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "show <video|document|presentation> <id>",
		Short:     "Print one record as JSON",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"video", "document", "presentation"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			return withService(cfg, func(ctx context.Context, svc *catalog.Service) error {
				var (
					record any
					err    error
				)
				switch kind {
				case "video":
					record, err = svc.Video(ctx, id)
				case "document":
					record, err = svc.Document(ctx, id)
				case "presentation":
					var v *models.Video
					v, err = svc.Presentation(ctx, id)
					if err == nil {
						record = v.Presentation
					}
				default:
					return fmt.Errorf("unknown kind %q: want video, document or presentation", kind)
				}
				if err != nil {
					return fmt.Errorf("%s %s: %w", kind, id, err)
				}
				return writeJSON(cmd.OutOrStdout(), record)
			})
		},
	}
}

func newCatalogCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category filter choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			return withService(cfg, func(ctx context.Context, svc *catalog.Service) error {
				cats, err := svc.Categories(ctx)
				if err != nil {
					return err
				}
				for _, c := range cats {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog YAML file",
		Long:  "Loads a catalog file and reports every invalid field and duplicate id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			videos, _ := src.Videos(ctx)
			documents, _ := src.Documents(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d videos, %d documents\n", len(videos), len(documents))
			return nil
		},
	}
}

// errMissingDownloads is returned when a download id has no backing file.
var errMissingDownloads = errors.New("some downloads are missing")

func newCatalogCheckDownloadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-downloads",
		Short: "Verify every download id has a file",
		Long: "With S3 configured, checks that downloads/<id> exists in the private bucket for every " +
			"document and presentation. Without S3, prints the Google Drive link for each.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			client, err := openStorage(cfg)
			if err != nil {
				return err
			}

			return withService(cfg, func(ctx context.Context, svc *catalog.Service) error {
				res, err := svc.Search(ctx, catalog.Query{})
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tID\tFILE\tSTATUS")

				missing := 0
				for _, f := range downloadFiles(res) {
					status := ""
					if client == nil {
						status, _ = download.Drive{}.URL(ctx, f.fileID)
					} else {
						ok, err := client.Exists(ctx, download.ObjectKey(f.fileID))
						switch {
						case err != nil:
							return err
						case ok:
							status = "ok"
						default:
							status = "missing"
							missing++
						}
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.kind, f.id, f.fileID, status)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if missing > 0 {
					return fmt.Errorf("%w: %d of them", errMissingDownloads, missing)
				}
				return nil
			})
		},
	}
}

// downloadFile is one record that links to an external file.
type downloadFile struct {
	kind   string
	id     int
	fileID string
}

// downloadFiles lists the documents and presentations with a download id.
func downloadFiles(res *catalog.Results) []downloadFile {
	var files []downloadFile
	for _, d := range res.Documents {
		if d.Downloadable() {
			files = append(files, downloadFile{"document", d.ID, d.DownloadID})
		}
	}
	for _, v := range res.Videos {
		if v.HasPresentation() && v.Presentation.Downloadable() {
			files = append(files, downloadFile{"presentation", v.ID, v.Presentation.DownloadID})
		}
	}
	return files
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
