// Package info prints where daybook keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/printers"
)

// Info prints the config and data summary.
type Info struct {
	Service *app.Service
	Out     io.Writer
}

// Do executes the report.
func (n *Info) Do(_ context.Context) error {
	if n.Service == nil {
		return fmt.Errorf("info: no service configured")
	}
	w := n.Out
	if w == nil {
		w = os.Stdout
	}

	env := "not set"
	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		env = override
	}
	cfg := n.Service.Config

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DAYBOOK_CONFIG_PATH:", env)
	tbl.AddRow("Data path:", cfg.BasePath())
	tbl.AddRow("Theme:", cfg.Theme())
	tbl.AddRow("Log level:", cfg.LogLevel())
	if sess := n.Service.Gate.Session(); sess != nil {
		tbl.AddRow("Session:", sess.User.Email)
	} else {
		tbl.AddRow("Session:", auth.SignedOut.String())
	}
	if n.Service.Gate.Status() == auth.SignedIn {
		st := n.Service.Store.State()
		tbl.AddRow("Calendars:", len(st.Calendars))
		tbl.AddRow("Events:", len(st.Events))
	}

	pp := printers.New(w, false)
	pp.Title("Daybook")
	_, err := fmt.Fprintln(w, tbl)
	return err
}
