package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aquapure/backoffice/internal/client/session"
)

const helpText = `Commands:
  login                       sign in
  logout                      sign out
  whoami                      show current session
  contacts [status]           list contact messages
  enquiries [status]          list RO-part enquiries
  issues [status]             list service issues
  gallery                     list gallery items
  gallery-add                 create a gallery item (prints upload URL)
  visitors [days]             daily visitor stats (default 30)
  admins                      list admin users
  admin-add                   create an admin user
  settings                    show site settings
  set <key> <value>           update a site setting
  status <res> <id> <status>  set status of contact|enquiry|issue
  rm <res> <id>               delete contact|enquiry|issue|gallery
  help                        this text
  exit                        quit`

func (a *App) prompt() string {
	snap := a.session.State()
	if snap.Status == session.StatusAuthenticated {
		return fmt.Sprintf("aqua (%s)> ", snap.User.Email)
	}
	return "aqua> "
}

// Root runs the command loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "AquaPure back-office console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}

		if err := a.dispatch(ctx, fields); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, fields []string) error {
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch fields[0] {
	case "help":
		fmt.Fprintln(a.out, helpText)
		return nil
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "contacts":
		return a.Contacts(ctx, arg(1))
	case "enquiries":
		return a.Enquiries(ctx, arg(1))
	case "issues":
		return a.Issues(ctx, arg(1))
	case "gallery":
		return a.Gallery(ctx)
	case "gallery-add":
		return a.AddGalleryItem(ctx)
	case "visitors":
		days := 30
		if arg(1) != "" {
			n, err := strconv.Atoi(arg(1))
			if err != nil {
				return fmt.Errorf("invalid day count %q", arg(1))
			}
			days = n
		}
		return a.Visitors(ctx, days)
	case "admins":
		return a.Admins(ctx)
	case "admin-add":
		return a.AddAdmin(ctx)
	case "settings":
		return a.Settings(ctx)
	case "set":
		if arg(1) == "" || arg(2) == "" {
			return fmt.Errorf("usage: set <key> <value>")
		}
		return a.apiClient.PutSetting(ctx, arg(1), strings.Join(fields[2:], " "))
	case "status":
		if arg(3) == "" {
			return fmt.Errorf("usage: status <resource> <id> <status>")
		}
		return a.SetStatus(ctx, arg(1), arg(2), arg(3))
	case "rm":
		if arg(2) == "" {
			return fmt.Errorf("usage: rm <resource> <id>")
		}
		return a.Remove(ctx, arg(1), arg(2))
	default:
		return fmt.Errorf("unknown command %q (type 'help')", fields[0])
	}
}
