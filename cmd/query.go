package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"logidash/action"
	"logidash/config"
	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/query"
	"logidash/web"
)

// openSet opens the stores named by the --store flag and wraps them in dispatchers
// that publish nowhere.
func openSet(cmd *cobra.Command) (*action.Set, func(), error) {
	mode, _ := cmd.Flags().GetString("store")
	stores, closeStores, err := web.OpenStores(cmd.Context(), mode)
	if err != nil {
		return nil, nil, err
	}
	return action.NewSet(stores, nil), closeStores, nil
}

func entityNames() []string {
	return []string{
		entity.InquirySchema.Entity,
		entity.DriverSchema.Entity,
		entity.TripSchema.Entity,
		entity.PayableSchema.Entity,
		entity.SLASchema.Entity,
		entity.UserSchema.Entity,
	}
}

func unknownEntity(name string) error {
	return fmt.Errorf("unknown entity %q (expected one of %s)", name, strings.Join(entityNames(), ", "))
}

// parseFilter turns "field=v1,v2" into a condition.
func parseFilter(raw string) (query.Condition, error) {
	field, values, found := strings.Cut(raw, "=")
	if !found || strings.TrimSpace(field) == "" {
		return query.Condition{}, fmt.Errorf("filter %q: expected field=value[,value...]", raw)
	}
	cond := query.Condition{Field: strings.TrimSpace(field)}
	for _, v := range strings.Split(values, ",") {
		if v = strings.TrimSpace(v); v != "" {
			cond.Values = append(cond.Values, v)
		}
	}
	return cond, nil
}

func printTable[T any](w io.Writer, schema query.Schema[T], items []T) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(append([]string{"id"}, schema.FieldNames()...), "\t")); err != nil {
		return err
	}
	for _, rec := range items {
		row := append([]string{schema.ID(rec)}, schema.Row(rec)...)
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeCSV[T any](path string, schema query.Schema[T], items []T) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func(outputFile *os.File) {
		if err := outputFile.Close(); err != nil {
			log.Printf("Failed to close output file: %v", err)
		}
	}(outputFile)

	writer := csv.NewWriter(outputFile)
	if err := writer.Write(append([]string{"id"}, schema.FieldNames()...)); err != nil {
		return err
	}
	for _, rec := range items {
		if err := writer.Write(append([]string{schema.ID(rec)}, schema.Row(rec)...)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func queryEntity[T entity.Record](ctx context.Context, w io.Writer, schema query.Schema[T], store dbt.EntityStore[T], req query.Request, csvPath string) error {
	items, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}
	res, err := query.Run(items, schema, req)
	if err != nil {
		return err
	}
	if csvPath != "" {
		return writeCSV(csvPath, schema, res.Items)
	}
	if err := printTable(w, schema, res.Items); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "page %d of %d, %d records\n", res.Page, res.TotalPages, res.Total)
	return err
}

func runQuery(ctx context.Context, w io.Writer, set *action.Set, name string, req query.Request, csvPath string) error {
	switch name {
	case entity.InquirySchema.Entity:
		return queryEntity(ctx, w, entity.InquirySchema, set.Inquiries.Store(), req, csvPath)
	case entity.DriverSchema.Entity:
		return queryEntity(ctx, w, entity.DriverSchema, set.Drivers.Store(), req, csvPath)
	case entity.TripSchema.Entity:
		return queryEntity(ctx, w, entity.TripSchema, set.Trips.Store(), req, csvPath)
	case entity.PayableSchema.Entity:
		return queryEntity(ctx, w, entity.PayableSchema, set.Payables.Store(), req, csvPath)
	case entity.SLASchema.Entity:
		return queryEntity(ctx, w, entity.SLASchema, set.SLA.Store(), req, csvPath)
	case entity.UserSchema.Entity:
		return queryEntity(ctx, w, entity.UserSchema, set.Users.Store(), req, csvPath)
	}
	return unknownEntity(name)
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query <entity>",
		Short:   "search, filter, sort and page one entity collection",
		Long:    `query runs the list pipeline over one entity collection and prints the requested page, or writes it to a CSV file.`,
		Example: `logidash query payables --filter status=Approved,Pending --sort totalAmount --desc --size 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			filters, _ := cmd.Flags().GetStringArray("filter")
			sortField, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			csvPath, _ := cmd.Flags().GetString("csv")

			if size <= 0 {
				size = config.FromEnv().DefaultPageSize
			}
			req := query.Request{
				Search:   search,
				Sort:     query.Sort{Field: sortField, Desc: desc},
				Page:     page,
				PageSize: size,
			}
			for _, raw := range filters {
				cond, err := parseFilter(raw)
				if err != nil {
					return err
				}
				req.Filters = append(req.Filters, cond)
			}

			set, closeStores, err := openSet(cmd)
			if err != nil {
				return err
			}
			defer closeStores()

			return runQuery(cmd.Context(), cmd.OutOrStdout(), set, args[0], req, csvPath)
		},
	}

	cmd.Flags().StringP("search", "s", "", "case-insensitive text searched across the searchable fields")
	cmd.Flags().StringArrayP("filter", "f", nil, "field=value[,value...]; repeat for more fields")
	cmd.Flags().String("sort", "", "field to sort by")
	cmd.Flags().Bool("desc", false, "sort descending")
	cmd.Flags().IntP("page", "p", 1, "page number")
	cmd.Flags().Int("size", 0, "page size (default from LOGIDASH_PAGE_SIZE or 10)")
	cmd.Flags().StringP("csv", "o", "", "write the page to this CSV file instead of printing it")

	return cmd
}
