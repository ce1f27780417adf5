package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Public portal: file and look up tickets without logging in",
}

var (
	nameFlag        string
	emailFlag       string
	areaFlag        string
	ticketPriority  string
	descriptionFlag string
	attachmentFlag  string
)

var portalSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "File a ticket through the public portal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in := forms.ParseTicket(url.Values{
			"requester_name":  {nameFlag},
			"requester_email": {emailFlag},
			"requester_area":  {areaFlag},
			"description":     {descriptionFlag},
			"priority":        {ticketPriority},
		})
		if errs := forms.NewValidator().Check(in); errs.Any() {
			return fieldErrors(errs)
		}
		t := apiclient.NewTicket{
			RequesterName:  in.RequesterName,
			RequesterEmail: in.RequesterEmail,
			RequesterArea:  in.RequesterArea,
			Description:    in.Description,
			Priority:       in.Priority,
		}
		if attachmentFlag != "" {
			up, err := readUpload(attachmentFlag)
			if err != nil {
				return err
			}
			t.Attachment = &apiclient.Attachment{Filename: up.Filename, ContentType: up.ContentType, Body: up.Reader()}
		}

		res, err := cli.api.SubmitTicket(cmd.Context(), t)
		if err != nil {
			if fe := apiclient.FieldErrors(err); len(fe) > 0 {
				return fieldErrors(fe)
			}
			return explain(err, "The ticket could not be created")
		}
		if jsonFlag {
			return printJSON(res)
		}
		fmt.Fprintf(cli.out, "Ticket %s created\n", res.TicketNumber)
		if res.VerificationCode != "" {
			fmt.Fprintf(cli.out, "Verification code: %s\n", res.VerificationCode)
		}
		return nil
	},
}

func readUpload(path string) (*forms.Upload, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > forms.MaxAttachmentSize {
		return nil, fmt.Errorf("attachment %s exceeds %d MB", path, forms.MaxAttachmentSize>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	up, msg := forms.CheckAttachment(filepath.Base(path), data)
	if msg != "" {
		return nil, errors.New(msg)
	}
	return up, nil
}

// fieldErrors joins per-field messages in field order.
func fieldErrors(errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+errs[k])
	}
	return fmt.Errorf("invalid ticket:\n%s", strings.Join(lines, "\n"))
}

var portalSearchCmd = &cobra.Command{
	Use:   "search NUMBER",
	Short: "Look up a ticket by its number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := forms.ParseSearch(url.Values{"ticket_number": {args[0]}})
		if errs := forms.NewValidator().Check(in); errs.Any() {
			return fieldErrors(errs)
		}
		t, err := cli.api.SearchTicket(cmd.Context(), in.TicketNumber)
		if err != nil {
			return explain(err, "Ticket not found")
		}
		if jsonFlag {
			return printJSON(t)
		}
		printTicket(t)
		return nil
	},
}

func init() {
	f := portalSubmitCmd.Flags()
	f.StringVar(&nameFlag, "name", "", "requester name")
	f.StringVar(&emailFlag, "email", "", "requester email")
	f.StringVar(&areaFlag, "area", "", "requester area")
	f.StringVar(&ticketPriority, "priority", models.PriorityMedium, "priority (baja, media, alta)")
	f.StringVar(&descriptionFlag, "description", "", "what happened, at least 10 characters")
	f.StringVar(&attachmentFlag, "attachment", "", "path to an image to attach")

	portalCmd.AddCommand(portalSubmitCmd, portalSearchCmd)
}
