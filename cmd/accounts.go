package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type registerCmd struct {
	account
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account" }
func (*registerCmd) Usage() string {
	return `fin register -u <username> -p <password>

  Creates an empty account. The username must be unique.
`
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	username, password, _ := c.credentials()
	ap, err := newApp()
	if err != nil {
		return exit(err)
	}
	if _, err := ap.session.Register(username, password); err != nil {
		return exit(err)
	}
	if err := ap.close(nil); err != nil {
		return exit(err)
	}
	fmt.Fprintf(stdout, "Account %q created.\n", username)
	return subcommands.ExitSuccess
}

type passwdCmd struct {
	account
	newPassword string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the password of an account" }
func (*passwdCmd) Usage() string {
	return `fin passwd -u <username> -p <password> -new <password>

  Replaces the password of the account.
`
}

func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	c.account.SetFlags(f)
	f.StringVar(&c.newPassword, "new", "", "The new password.")
}

func (c *passwdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := finance.ValidateCredentials(c.username, c.newPassword); err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		if err := l.ChangePassword(c.newPassword); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Password changed.")
		return nil
	})
}

type deleteCmd struct {
	account
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete an account and its record" }
func (*deleteCmd) Usage() string {
	return `fin delete -u <username> -p <password>

  Deletes the account record and removes the user from the users index.
  This cannot be undone.
`
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	username, password, ok := c.credentials()
	if !ok {
		return usage("-u and -p are required")
	}
	ap, err := newApp()
	if err != nil {
		return exit(err)
	}
	if err := ap.session.DeleteAccount(username, password); err != nil {
		return exit(err)
	}
	ap.log.Info("account deleted", "user", username)
	fmt.Fprintf(stdout, "Account %q deleted.\n", username)
	return subcommands.ExitSuccess
}

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list registered users" }
func (*usersCmd) Usage() string {
	return `fin users

  Lists the registered usernames in registration order.
`
}
func (*usersCmd) SetFlags(f *flag.FlagSet) {}

func (*usersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ap, err := newApp()
	if err != nil {
		return exit(err)
	}
	for _, u := range ap.session.Directory().Users() {
		fmt.Fprintln(stdout, u)
	}
	return subcommands.ExitSuccess
}
