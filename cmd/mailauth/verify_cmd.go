package main

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/emersion/go-imap/client"
	"github.com/spf13/cobra"

	"github.com/altafino/mailauth/internal/config"
	"github.com/altafino/mailauth/internal/protocolauth"
	"github.com/altafino/mailauth/internal/resolver"
)

func newVerifyCmd() *cobra.Command {
	var (
		host       string
		port       string
		user       string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Resolve credentials and test them against an IMAP server",
		Long: `Resolves an access token for the given identity, connects to the IMAP
server and performs the capability-gated XOAUTH2 login.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.BuildSource(cfg, log)
			if err != nil {
				return err
			}
			endpoint := config.BuildEndpoint(cfg, log)

			record, err := resolver.New(source, endpoint, log).
				Resolve(cmd.Context(), []string{host}, user, []string{port})
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no credentials found for %s:%s user %q", host, port, user)
			}

			session, err := connectIMAP(record, skipVerify)
			if err != nil {
				return err
			}
			defer session.Logout()

			if err := protocolauth.LoginIMAP(session, record, log); err != nil {
				return err
			}

			log.Info("IMAP login succeeded",
				"host", record.Host,
				"port", record.Port,
				"user", record.User,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "IMAP server host")
	cmd.Flags().StringVar(&port, "port", "993", "IMAP server port")
	cmd.Flags().StringVar(&user, "user", "", "login user (may come from the credential source)")
	cmd.Flags().BoolVar(&skipVerify, "insecure-skip-verify", false, "skip TLS certificate verification")
	cmd.MarkFlagRequired("host")

	return cmd
}

// connectIMAP dials the server. Port 143 starts plain and upgrades
// with STARTTLS; any other port uses a direct TLS connection.
func connectIMAP(record *resolver.Record, skipVerify bool) (*client.Client, error) {
	addr := net.JoinHostPort(record.Host, record.Port)
	tlsConfig := &tls.Config{
		ServerName:         record.Host,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: skipVerify,
	}

	log.Info("connecting to IMAP server",
		"host", record.Host,
		"port", record.Port,
		"user", record.User,
	)

	if record.Port == "143" {
		c, err := client.Dial(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
		}
		if err := c.StartTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
		return c, nil
	}

	c, err := client.DialTLS(addr, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	return c, nil
}
