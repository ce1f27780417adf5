package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/listing"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"t"},
	Short:   "List and inspect tickets",
}

var (
	pageFlag     int
	perPageFlag  int
	statusFlag   string
	priorityFlag string
	searchFlag   string
)

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets visible to you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		q := listing.New().
			WithPerPage(perPageFlag).
			WithSearch(searchFlag).
			WithFilter("status", statusFlag).
			WithFilter("priority", priorityFlag).
			WithPage(pageFlag)

		page, err := cli.api.ListTickets(cmd.Context(), q.Values())
		if err != nil {
			return explain(err, "Tickets could not be loaded")
		}
		if jsonFlag {
			return printJSON(page)
		}
		tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNUMBER\tREQUESTER\tPRIORITY\tSTATUS\tAGENT\tCREATED")
		for _, t := range page.Data {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.TicketNumber, t.RequesterName, views.PriorityLabel(t.Priority),
				t.Status.Name, agentName(t), humanize.Time(t.CreatedAt))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "page %d of %d, %s tickets\n", page.CurrentPage, max(page.LastPage, 1), humanize.Comma(int64(page.Total)))
		return nil
	},
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a ticket and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}
		t, err := cli.api.GetTicket(cmd.Context(), id)
		if err != nil {
			return explain(err, "Ticket not found")
		}
		comments, err := cli.api.ListComments(cmd.Context(), id)
		if err != nil {
			return explain(err, "Comments could not be loaded")
		}
		if jsonFlag {
			return printJSON(struct {
				Ticket   models.Ticket    `json:"ticket"`
				Comments []models.Comment `json:"comments"`
			}{t, comments})
		}
		printTicket(t)
		if len(comments) > 0 {
			fmt.Fprintf(cli.out, "\nComments (%d)\n", len(comments))
			for _, c := range comments {
				fmt.Fprintf(cli.out, "- %s, %s:\n  %s\n", c.User.Name, humanize.Time(c.CreatedAt), c.Comment)
			}
		}
		return nil
	},
}

func agentName(t models.Ticket) string {
	if t.AssignedAgent == nil {
		return "-"
	}
	return t.AssignedAgent.Name
}

func printTicket(t models.Ticket) {
	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ticket\t%s\n", t.TicketNumber)
	fmt.Fprintf(tw, "Status\t%s\n", t.Status.Name)
	fmt.Fprintf(tw, "Priority\t%s\n", views.PriorityLabel(t.Priority))
	fmt.Fprintf(tw, "Requester\t%s <%s>\n", t.RequesterName, t.RequesterEmail)
	fmt.Fprintf(tw, "Area\t%s\n", t.RequesterArea)
	fmt.Fprintf(tw, "Agent\t%s\n", agentName(t))
	fmt.Fprintf(tw, "Created\t%s\n", humanize.Time(t.CreatedAt))
	_ = tw.Flush()
	fmt.Fprintf(cli.out, "\n%s\n", t.Description)
}

func init() {
	f := ticketsListCmd.Flags()
	f.IntVar(&pageFlag, "page", 1, "page number")
	f.IntVar(&perPageFlag, "per-page", listing.DefaultPerPage, "tickets per page (5, 10, 20 or 50)")
	f.StringVar(&statusFlag, "status", "", "filter by status name (e.g. open)")
	f.StringVar(&priorityFlag, "priority", "", "filter by priority (baja, media, alta)")
	f.StringVar(&searchFlag, "search", "", "free-text search")

	ticketsCmd.AddCommand(ticketsListCmd, ticketsShowCmd)
}
