package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/aquapure/backoffice/internal/client/api"
)

func (a *App) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// Contacts lists contact-form messages, optionally filtered by status.
func (a *App) Contacts(ctx context.Context, status string) error {
	items, err := a.apiClient.ListContacts(ctx, api.ListOptions{Status: status})
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATUS\tCREATED")
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Status, c.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// Enquiries lists RO-part enquiries, optionally filtered by status.
func (a *App) Enquiries(ctx context.Context, status string) error {
	items, err := a.apiClient.ListEnquiries(ctx, api.ListOptions{Status: status})
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "ID\tNAME\tPART\tQTY\tSTATUS\tCREATED")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", e.ID, e.Name, e.Part, e.Quantity, e.Status, e.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// Issues lists reported service issues, optionally filtered by status.
func (a *App) Issues(ctx context.Context, status string) error {
	items, err := a.apiClient.ListIssues(ctx, api.ListOptions{Status: status})
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "ID\tNAME\tSUBJECT\tSTATUS\tCREATED")
	for _, i := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", i.ID, i.Name, i.Subject, i.Status, i.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// Gallery lists published gallery items with presigned image links.
func (a *App) Gallery(ctx context.Context) error {
	items, err := a.apiClient.ListGallery(ctx)
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tCREATED")
	for _, g := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Title, g.Category, g.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// AddGalleryItem prompts for a title and category, creates the item and
// prints the presigned upload URL for the image.
func (a *App) AddGalleryItem(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category", a.out)
	if err != nil {
		return err
	}

	up, err := a.apiClient.CreateGalleryItem(ctx, title, category)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s. Upload the image with:\n  curl -X PUT --upload-file photo.jpg '%s'\n", up.Item.ID, up.UploadURL)
	return nil
}

// Visitors prints the daily visitor rollup for the last N days.
func (a *App) Visitors(ctx context.Context, days int) error {
	stats, err := a.apiClient.VisitorSummary(ctx, days)
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "DAY\tVISITS\tUNIQUES")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Day, s.Visits, s.Uniques)
	}
	return tw.Flush()
}

// Admins lists back-office users.
func (a *App) Admins(ctx context.Context) error {
	items, err := a.apiClient.ListAdmins(ctx)
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, ad := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ad.ID, ad.Name, ad.Email, ad.Role)
	}
	return tw.Flush()
}

// AddAdmin prompts for the new admin's details.
func (a *App) AddAdmin(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (admin/editor)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	admin, err := a.apiClient.CreateAdmin(ctx, name, email, role, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created admin %s (%s)\n", admin.Name, admin.ID)
	return nil
}

// Settings prints the site settings key-value table.
func (a *App) Settings(ctx context.Context) error {
	settings, err := a.apiClient.Settings(ctx)
	if err != nil {
		return err
	}
	tw := a.newTable()
	fmt.Fprintln(tw, "KEY\tVALUE")
	for k, v := range settings {
		fmt.Fprintf(tw, "%s\t%s\n", k, v)
	}
	return tw.Flush()
}

// SetStatus updates the status of a contact, enquiry or issue.
func (a *App) SetStatus(ctx context.Context, resource, id, status string) error {
	switch resource {
	case "contact":
		return a.apiClient.UpdateContactStatus(ctx, id, status)
	case "enquiry":
		return a.apiClient.UpdateEnquiryStatus(ctx, id, status)
	case "issue":
		return a.apiClient.UpdateIssueStatus(ctx, id, status)
	default:
		return fmt.Errorf("unknown resource %q (want contact|enquiry|issue)", resource)
	}
}

// Remove deletes a contact, enquiry, issue or gallery item.
func (a *App) Remove(ctx context.Context, resource, id string) error {
	switch resource {
	case "contact":
		return a.apiClient.DeleteContact(ctx, id)
	case "enquiry":
		return a.apiClient.DeleteEnquiry(ctx, id)
	case "issue":
		return a.apiClient.DeleteIssue(ctx, id)
	case "gallery":
		return a.apiClient.DeleteGalleryItem(ctx, id)
	default:
		return fmt.Errorf("unknown resource %q (want contact|enquiry|issue|gallery)", resource)
	}
}
