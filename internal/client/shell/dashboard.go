package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gookit/color"
	"github.com/shandysiswandi/gobudget/internal/client/api"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

const (
	msgLoggedOut      = "Logged out"
	msgLogoutFailed   = "Logout failed"
	msgSessionExpired = "Session expired. Please log in again."
	msgAdded          = "Transaction added"
	msgDeleted        = "Transaction deleted"
)

const helpText = `Commands:
  list [--q text] [--category name] [--type income|expense] [--from date] [--to date] [--min n] [--max n]
  add --title text --amount n [--type income|expense] [--category name] [--date YYYY-MM-DD]
  delete <id>
  summary [filters]
  categories [filters] [--all]
  logout
  help
  quit`

type command func(ctx context.Context, args []string) error

func (s *Shell) commands() map[string]command {
	return map[string]command{
		"list":       s.cmdList,
		"add":        s.cmdAdd,
		"delete":     s.cmdDelete,
		"summary":    s.cmdSummary,
		"categories": s.cmdCategories,
		"logout":     s.cmdLogout,
		"help": func(context.Context, []string) error {
			s.println(helpText)
			return nil
		},
		"quit": func(context.Context, []string) error { return errQuit },
		"exit": func(context.Context, []string) error { return errQuit },
	}
}

func (s *Shell) runDashboard(ctx context.Context) error {
	u := s.currentUser()
	s.println(color.Bold.Sprintf("Welcome, %s", displayName(u)))
	s.println(`Type "help" for commands.`)

	cmds := s.commands()
	for s.currentUser() != nil {
		line, err := s.readLine("budget> ")
		if err != nil {
			return err
		}

		args, err := splitArgs(line)
		if err != nil {
			s.bus.Error(err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}

		cmd, ok := cmds[args[0]]
		if !ok {
			s.bus.Error(fmt.Sprintf("Unknown command %q", args[0]))
			continue
		}

		err = cmd(ctx, args[1:])
		switch {
		case errors.Is(err, errQuit):
			return err
		case errors.Is(err, api.ErrUnauthorized):
			s.bus.Error(msgSessionExpired)
			s.setUser(nil)
		case err != nil:
			s.bus.Error(errorText(err))
		}
	}

	return nil
}

func displayName(u *api.User) string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func errorText(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func bindFilter(fs *pflag.FlagSet) *api.Filter {
	f := &api.Filter{}
	fs.StringVar(&f.Query, "q", "", "title contains")
	fs.StringVar(&f.Category, "category", "", "category name")
	fs.StringVar(&f.Type, "type", "", "income or expense")
	fs.StringVar(&f.StartDate, "from", "", "start date, YYYY-MM-DD")
	fs.StringVar(&f.EndDate, "to", "", "end date, YYYY-MM-DD")
	fs.StringVar(&f.MinAmount, "min", "", "minimum amount")
	fs.StringVar(&f.MaxAmount, "max", "", "maximum amount")
	return f
}

// parse parses args into fs and prints usage on --help. ok is false when the
// command should stop without error.
func (s *Shell) parse(fs *pflag.FlagSet, args []string) (ok bool, err error) {
	err = fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		s.printf("Usage of %s:\n%s", fs.Name(), fs.FlagUsages())
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Shell) cmdList(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	f := bindFilter(fs)
	if ok, err := s.parse(fs, args); !ok {
		return err
	}

	items, err := s.api.Transactions(ctx, *f)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		s.println("No transactions found.")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tCATEGORY\tTYPE\tAMOUNT")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date.Format("2006-01-02"), t.Title, t.Category, t.Type, signedAmount(t.Type, t.Amount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s.printf("%d transaction(s)\n", len(items))
	return nil
}

func (s *Shell) cmdAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	in := api.NewTransaction{}
	fs.StringVar(&in.Title, "title", "", "transaction title")
	fs.StringVar(&in.Amount, "amount", "", "positive amount")
	fs.StringVar(&in.Type, "type", "expense", "income or expense")
	fs.StringVar(&in.Category, "category", "Other", "category name")
	fs.StringVar(&in.Date, "date", "", "date, YYYY-MM-DD (default today)")
	if ok, err := s.parse(fs, args); !ok {
		return err
	}

	t, err := s.api.AddTransaction(ctx, in)
	if err != nil {
		return err
	}

	s.bus.Success(msgAdded)
	s.printf("%s  %s  %s\n", t.ID, t.Title, signedAmount(t.Type, t.Amount))
	return nil
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}

	if err := s.api.DeleteTransaction(ctx, args[0]); err != nil {
		return err
	}

	s.bus.Success(msgDeleted)
	return nil
}

func (s *Shell) cmdSummary(ctx context.Context, args []string) error {
	fs := newFlagSet("summary")
	f := bindFilter(fs)
	if ok, err := s.parse(fs, args); !ok {
		return err
	}

	sum, err := s.api.Summary(ctx, *f)
	if err != nil {
		return err
	}

	balance := formatAmount(sum.Balance)
	if sum.Balance < 0 {
		balance = color.Red.Sprint(balance)
	} else {
		balance = color.Green.Sprint(balance)
	}

	s.printf("Income:   %s\n", color.Green.Sprint(formatAmount(sum.TotalIncome)))
	s.printf("Expenses: %s\n", color.Red.Sprint(formatAmount(sum.TotalExpenses)))
	s.printf("Balance:  %s\n", balance)
	return nil
}

func (s *Shell) cmdCategories(ctx context.Context, args []string) error {
	fs := newFlagSet("categories")
	f := bindFilter(fs)
	all := fs.Bool("all", false, "list the selectable categories")
	if ok, err := s.parse(fs, args); !ok {
		return err
	}

	if *all {
		names, err := s.api.CategoryList(ctx)
		if err != nil {
			return err
		}
		s.println(strings.Join(names, ", "))
		return nil
	}

	totals, err := s.api.Categories(ctx, *f)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		s.println("No expenses to break down.")
		return nil
	}

	var sum float64
	for _, c := range totals {
		sum += c.Value
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE\t")
	for _, c := range totals {
		share := 0.0
		if sum > 0 {
			share = c.Value / sum * 100
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%s\n", c.Name, formatAmount(c.Value), share, color.HEX(c.Color).Sprint("■"))
	}
	return tw.Flush()
}

func (s *Shell) cmdLogout(ctx context.Context, _ []string) error {
	if err := s.api.Logout(ctx); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		s.bus.Error(msgLogoutFailed)
		return nil
	}

	s.bus.Success(msgLoggedOut)
	s.setUser(nil)
	return nil
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func signedAmount(kind string, v float64) string {
	if kind == "expense" {
		return "-" + formatAmount(v)
	}
	return "+" + formatAmount(v)
}
