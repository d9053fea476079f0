package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"logidash/action"
	"logidash/config"
	"logidash/entity"
	"logidash/query"
	"logidash/screen"
)

const consoleHelp = `commands:
  list                        show the current page
  search <text>               set the search text (empty clears it)
  filter <field> <v1,v2>      restrict a field to the listed values (no values clears it)
  clear                       drop every filter
  sort <field> [desc]         sort by a field
  page <n> | size <n>         move to a page or change the page size
  open <id>                   select a record and show it with its actions
  do <action> [key=value...]  run an action on the selected record (driverId, reason, amount, reference, note)
  close                       close the selected record
  state                       print the screen state
  help | quit`

// console drives one screen from line commands.
type console[T entity.Record] struct {
	screen *screen.Screen[T]
	schema query.Schema[T]
	out    io.Writer
}

// parseParams reads key=value tokens; a token without "=" continues the previous value.
func parseParams(tokens []string) (action.Params, error) {
	values := map[string]string{}
	last := ""
	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, "=")
		if !found {
			if last == "" {
				return action.Params{}, fmt.Errorf("expected key=value, got %q", tok)
			}
			values[last] += " " + tok
			continue
		}
		values[key] = value
		last = key
	}

	var p action.Params
	for key, value := range values {
		switch key {
		case "driverId":
			p.DriverID = value
		case "reason":
			p.Reason = value
		case "reference":
			p.Reference = value
		case "note":
			p.Note = value
		case "amount":
			amount, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return action.Params{}, fmt.Errorf("amount %q: %w", value, err)
			}
			p.Amount = amount
		default:
			return action.Params{}, fmt.Errorf("unknown parameter %q", key)
		}
	}
	return p, nil
}

func (c *console[T]) list(ctx context.Context) error {
	res, err := c.screen.View(ctx)
	if err != nil {
		return err
	}
	if err := printTable(c.out, c.schema, res.Items); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "page %d of %d, %d records\n", res.Page, res.TotalPages, res.Total)
	return err
}

func (c *console[T]) show(ctx context.Context, rec T) error {
	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	actions, err := c.screen.Actions(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	_, err = fmt.Fprintf(c.out, "%s\nactions: %s\n", body, strings.Join(names, ", "))
	return err
}

// exec runs one command line. It reports false once the session should end.
func (c *console[T]) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

	switch cmd {
	case "quit", "exit":
		return false, nil
	case "help":
		_, err := fmt.Fprintln(c.out, consoleHelp)
		return true, err
	case "list":
		return true, c.list(ctx)
	case "search":
		c.screen.SetSearch(rest)
		return true, c.list(ctx)
	case "filter":
		if len(args) == 0 {
			return true, fmt.Errorf("usage: filter <field> <v1,v2>")
		}
		var values []string
		if len(args) > 1 {
			for _, v := range strings.Split(strings.TrimSpace(strings.TrimPrefix(rest, args[0])), ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
		if err := c.screen.SetFilter(args[0], values...); err != nil {
			return true, err
		}
		return true, c.list(ctx)
	case "clear":
		c.screen.ClearFilters()
		return true, c.list(ctx)
	case "sort":
		if len(args) == 0 {
			return true, fmt.Errorf("usage: sort <field> [desc]")
		}
		if err := c.screen.SetSort(args[0], len(args) > 1 && args[1] == "desc"); err != nil {
			return true, err
		}
		return true, c.list(ctx)
	case "page", "size":
		if len(args) != 1 {
			return true, fmt.Errorf("usage: %s <n>", cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return true, fmt.Errorf("%s %q: %w", cmd, args[0], err)
		}
		if cmd == "page" {
			c.screen.SetPage(n)
		} else {
			c.screen.SetPageSize(n)
		}
		return true, c.list(ctx)
	case "open":
		if len(args) != 1 {
			return true, fmt.Errorf("usage: open <id>")
		}
		rec, err := c.screen.Select(ctx, args[0])
		if err != nil {
			return true, err
		}
		return true, c.show(ctx, rec)
	case "do":
		if len(args) == 0 {
			return true, fmt.Errorf("usage: do <action> [key=value...]")
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return true, err
		}
		note, err := c.screen.Dispatch(ctx, action.Name(args[0]), params)
		if _, werr := fmt.Fprintf(c.out, "[%s] %s\n", note.Level, note.Message); werr != nil {
			return true, werr
		}
		if err != nil {
			// the notification already told the user
			return true, nil
		}
		return true, c.list(ctx)
	case "close":
		c.screen.CloseModal()
		return true, nil
	case "state":
		body, err := json.Marshal(c.screen.State())
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(c.out, string(body))
		return true, err
	}
	return true, fmt.Errorf("unknown command %q, try help", cmd)
}

func runConsoleSession[T entity.Record](ctx context.Context, in io.Reader, out io.Writer, schema query.Schema[T], dispatcher *action.Dispatcher[T], pageSize int) error {
	c := &console[T]{screen: screen.New(schema, dispatcher, pageSize), schema: schema, out: out}
	if err := c.list(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprintf(out, "%s> ", schema.Entity); err != nil {
			return err
		}
		if !scanner.Scan() {
			_, err := fmt.Fprintln(out)
			if err != nil {
				return err
			}
			return scanner.Err()
		}
		more, err := c.exec(ctx, scanner.Text())
		if err != nil {
			if _, werr := fmt.Fprintf(out, "error: %v\n", err); werr != nil {
				return werr
			}
		}
		if !more {
			return nil
		}
	}
}

func runConsole(ctx context.Context, in io.Reader, out io.Writer, set *action.Set, name string, pageSize int) error {
	switch name {
	case entity.InquirySchema.Entity:
		return runConsoleSession(ctx, in, out, entity.InquirySchema, set.Inquiries, pageSize)
	case entity.DriverSchema.Entity:
		return runConsoleSession(ctx, in, out, entity.DriverSchema, set.Drivers, pageSize)
	case entity.TripSchema.Entity:
		return runConsoleSession(ctx, in, out, entity.TripSchema, set.Trips, pageSize)
	case entity.PayableSchema.Entity:
		return runConsoleSession(ctx, in, out, entity.PayableSchema, set.Payables, pageSize)
	case entity.SLASchema.Entity:
		return runConsoleSession(ctx, in, out, entity.SLASchema, set.SLA, pageSize)
	case entity.UserSchema.Entity:
		return runConsoleSession(ctx, in, out, entity.UserSchema, set.Users, pageSize)
	}
	return unknownEntity(name)
}

func consoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "console <entity>",
		Short:   "interactive list screen for one entity",
		Long:    `console reads commands from stdin and drives one list screen: search, filter, sort, page, open a record and run its actions.`,
		Example: `logidash console trips`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")
			if size <= 0 {
				size = config.FromEnv().DefaultPageSize
			}

			set, closeStores, err := openSet(cmd)
			if err != nil {
				return err
			}
			defer closeStores()

			return runConsole(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), set, args[0], size)
		},
	}

	cmd.Flags().Int("size", 0, "page size (default from LOGIDASH_PAGE_SIZE or 10)")

	return cmd
}
