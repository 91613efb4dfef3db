package cmd

import (
	"flag"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/google/subcommands"
)

// EnvPassword is read when the -p flag is not set.
const EnvPassword = config.EnvPrefix + "_PASSWORD"

// account holds the credential flags shared by commands working on one account.
type account struct {
	username string
	password string
}

func (a *account) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.username, "u", "", "Username of the account.")
	f.StringVar(&a.password, "p", "", "Password of the account. Defaults to $"+EnvPassword+".")
}

// credentials returns the username and password, or a usage error.
func (a *account) credentials() (string, string, bool) {
	password := a.password
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	return a.username, password, a.username != "" && password != ""
}

// run logs in, calls do with the open ledger, then logs out, which saves the ledger.
func (a *account) run(do func(*app, *finance.Ledger) error) subcommands.ExitStatus {
	username, password, ok := a.credentials()
	if !ok {
		return usage("-u and -p are required")
	}
	ap, err := newApp()
	if err != nil {
		return exit(err)
	}
	l, err := ap.session.Login(username, password)
	if err != nil {
		return exit(err)
	}
	ap.log.Debug("account opened", "user", username, "entries", l.Len())
	return exit(ap.close(do(ap, l)))
}
