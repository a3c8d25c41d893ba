package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/altafino/mailauth/internal/config"
	"github.com/altafino/mailauth/internal/oauth2"
	"github.com/altafino/mailauth/internal/resolver"
)

func newResolveCmd() *cobra.Command {
	var (
		hosts  []string
		ports  []string
		user   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an access token for a (host, user, port) identity",
		Long: `Probes the configured credential source for each host/port pair in
order, exchanges the matching refresh token for a live access token and
prints it. Suitable as a password command for mutt or msmtp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.BuildSource(cfg, log)
			if err != nil {
				return err
			}
			endpoint := config.BuildEndpoint(cfg, log)

			record, err := resolver.New(source, endpoint, log).
				Resolve(cmd.Context(), hosts, user, ports)
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no credentials found for hosts %v, user %q, ports %v", hosts, user, ports)
			}

			switch output {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			case "sasl":
				fmt.Println(oauth2.EncodeXOAUTH2(record.User, record.Secret))
			default:
				fmt.Println(record.Secret)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hosts, "host", nil, "candidate host, repeatable, probed in order")
	cmd.Flags().StringSliceVar(&ports, "port", nil, "candidate port, repeatable, probed in order")
	cmd.Flags().StringVar(&user, "user", "", "login user (may come from the credential source)")
	cmd.Flags().StringVar(&output, "output", "token", "output format (token, json, sasl)")
	cmd.MarkFlagRequired("host")
	cmd.MarkFlagRequired("port")

	return cmd
}

func newEncodeCmd() *cobra.Command {
	var user, token string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the SASL XOAUTH2 initial response for a user and token",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(oauth2.EncodeXOAUTH2(user, token))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "login user")
	cmd.Flags().StringVar(&token, "token", "", "bearer access token")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("token")

	return cmd
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List known OAuth2 providers and their token endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range oauth2.Providers() {
				tokenURL, err := oauth2.ProviderTokenURL(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\n", name, tokenURL)
			}
			return nil
		},
	}
}
