package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pahanaedu/bookstore/core/sessionkeeper"
)

func newPingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send one keep-alive request",
		Long:  "Sends a single keep-alive to the server. Exits non-zero if the session is no longer valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jar, err := newCookieJar(c.session.BaseURL, c.app.CookieName, c.app.SessionCookie)
			if err != nil {
				return err
			}

			keeper, err := sessionkeeper.New(c.session,
				sessionkeeper.WithHTTPClient(newClient(jar, c.log)),
				sessionkeeper.WithLogger(c.log),
			)
			if err != nil {
				return err
			}
			defer keeper.Close()

			if err := keeper.SendKeepAlive(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session alive")
			return nil
		},
	}
}
