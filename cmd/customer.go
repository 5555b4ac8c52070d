package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/order-ingest/internal/config"
	"github.com/example/order-ingest/internal/customers"
	"github.com/example/order-ingest/internal/db"
	"github.com/example/order-ingest/internal/migrate"
)

func newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Maintain the advertiser directory",
	}
	cmd.AddCommand(newCustomerAddCmd())
	cmd.AddCommand(newCustomerListCmd())
	cmd.AddCommand(newCustomerFindCmd())
	return cmd
}

func openRepo(ctx context.Context) (*customers.Repo, func(), error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, nil, err
	}
	return customers.NewRepo(d), d.Close, nil
}

func newCustomerAddCmd() *cobra.Command {
	var name, market, agencyName string

	c := &cobra.Command{
		Use:   "add",
		Short: "Add an advertiser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, done, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer done()

			created, err := repo.Create(ctx, customers.Customer{Name: name, Market: market, Agency: agencyName})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created customer %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "advertiser name")
	c.Flags().StringVar(&market, "market", "", "station market code")
	c.Flags().StringVar(&agencyName, "agency", "", "booking agency")
	_ = c.MarkFlagRequired("name")
	return c
}

func newCustomerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List advertisers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, done, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer done()

			all, err := repo.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range all {
				fmt.Printf("%s\t%-30s market=%s agency=%s\n", c.ID, c.Name, c.Market, c.Agency)
			}
			return nil
		},
	}
}

func newCustomerFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Find an advertiser by normalized name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, done, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer done()

			c, err := repo.FindNormalized(ctx, args[0])
			if db.IsNotFound(err) {
				return fmt.Errorf("no customer matches %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\tmarket=%s agency=%s\n", c.ID, c.Name, c.Market, c.Agency)
			return nil
		},
	}
}
